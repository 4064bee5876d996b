package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tawhidislam22/business-management/internal/models"
)

// Session is an immutable snapshot of the current identity state.
// Role is non-nil only while User is non-nil. IsLoading is true during any
// in-flight identity or role resolution.
type Session struct {
	Token     string
	User      *User
	Role      *models.UserRole
	IsLoading bool
}

// IsHR reports whether the session belongs to an HR manager.
func (s Session) IsHR() bool {
	return s.Role != nil && *s.Role == models.RoleHR
}

// RoleResolver resolves the coarse role for a signed-in email.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (models.UserRole, error)
}

// Manager is the process-wide source of truth for the current session.
// It consumes the provider's state-change stream, exchanges identities for
// backend bearer credentials and persists them, and notifies subscribers
// synchronously on every state change.
type Manager struct {
	provider Provider
	issuer   TokenIssuer
	roles    RoleResolver
	store    *CredentialStore
	log      *zap.Logger

	mu      sync.Mutex
	sess    Session
	subs    map[int]func(Session)
	nextSub int

	done     chan struct{}
	loopDone chan struct{}
}

// NewManager wires the manager and starts consuming provider events.
// Call Close to release the subscription.
func NewManager(provider Provider, issuer TokenIssuer, roles RoleResolver, store *CredentialStore, log *zap.Logger) *Manager {
	m := &Manager{
		provider: provider,
		issuer:   issuer,
		roles:    roles,
		store:    store,
		log:      log,
		sess:     Session{IsLoading: true},
		subs:     map[int]func(Session){},
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	go m.loop()
	return m
}

// Close stops the event loop and releases the provider subscription.
func (m *Manager) Close() {
	close(m.done)
	<-m.loopDone
}

func (m *Manager) loop() {
	defer close(m.loopDone)
	events := m.provider.StateChanges()
	for {
		select {
		case <-m.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			m.handleEvent(context.Background(), ev)
		}
	}
}

// handleEvent settles the session after a provider state change: on
// sign-in it exchanges the identity for a bearer credential and resolves
// the role; on sign-out it drops the stored credential.
func (m *Manager) handleEvent(ctx context.Context, ev Event) {
	if ev.User == nil {
		if err := m.store.Clear(); err != nil {
			m.log.Warn("failed to clear stored credentials", zap.Error(err))
		}
		m.update(func(s *Session) {
			*s = Session{}
		})
		return
	}

	user := *ev.User
	m.update(func(s *Session) {
		s.User = &user
		s.Role = nil
		s.IsLoading = true
	})

	token := ""
	access, refresh, err := m.issuer.IssueToken(ctx, user.Email)
	if err != nil {
		// Known gap carried over from the original flow: the session
		// proceeds without a backend credential and API calls will fail
		// with 401 until the next sign-in.
		m.log.Error("token exchange failed, session is degraded",
			zap.String("email", user.Email), zap.Error(err))
	} else {
		if err := m.store.SetTokens(access, refresh); err != nil {
			m.log.Error("failed to persist credentials", zap.Error(err))
		}
		token = access
	}

	var role *models.UserRole
	if m.roles != nil {
		resolved, err := m.roles.ResolveRole(ctx, user.Email)
		if err != nil {
			m.log.Warn("role resolution failed, defaulting to employee",
				zap.String("email", user.Email), zap.Error(err))
			resolved = models.RoleEmployee
		}
		role = &resolved
	}

	m.update(func(s *Session) {
		s.Token = token
		s.Role = role
		s.IsLoading = false
	})
}

// SignInWithPassword authenticates against the identity provider. The
// session settles asynchronously via the provider's state-change event.
func (m *Manager) SignInWithPassword(ctx context.Context, email, password string) error {
	m.setLoading()
	if _, err := m.provider.SignInWithPassword(ctx, email, password); err != nil {
		m.clearLoading()
		return err
	}
	return nil
}

// SignInWithFederatedProvider runs the provider-hosted federated flow.
func (m *Manager) SignInWithFederatedProvider(ctx context.Context) error {
	m.setLoading()
	if _, err := m.provider.SignInWithFederatedProvider(ctx); err != nil {
		m.clearLoading()
		return err
	}
	return nil
}

// CreateAccount provisions a new identity and signs it in.
func (m *Manager) CreateAccount(ctx context.Context, email, password string) error {
	m.setLoading()
	if _, err := m.provider.CreateAccount(ctx, email, password); err != nil {
		m.clearLoading()
		return err
	}
	return nil
}

// UpdateProfile changes the signed-in identity's public profile.
func (m *Manager) UpdateProfile(ctx context.Context, displayName, photoURL string) error {
	m.mu.Lock()
	signedIn := m.sess.User != nil
	m.mu.Unlock()
	if !signedIn {
		return ErrNoActiveSession
	}

	if err := m.provider.UpdateProfile(ctx, displayName, photoURL); err != nil {
		return err
	}

	m.update(func(s *Session) {
		if s.User == nil {
			return
		}
		user := *s.User
		user.DisplayName = displayName
		user.PhotoURL = photoURL
		s.User = &user
	})
	return nil
}

// SignOut ends the provider session and drops the stored credential.
// It never fails observably: provider errors are logged and the client
// always ends up logged out.
func (m *Manager) SignOut(ctx context.Context) {
	if err := m.provider.SignOut(ctx); err != nil {
		m.log.Warn("provider sign-out failed", zap.Error(err))
	}
	if err := m.store.Clear(); err != nil {
		m.log.Warn("failed to clear stored credentials", zap.Error(err))
	}
	m.update(func(s *Session) {
		*s = Session{}
	})
}

// ForceSignOut is invoked by the HTTP layer when credential refresh
// terminally fails.
func (m *Manager) ForceSignOut(ctx context.Context) {
	m.SignOut(ctx)
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// OnChange registers a subscriber called synchronously on every session
// change. The returned function unregisters it.
func (m *Manager) OnChange(fn func(Session)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) setLoading() {
	m.update(func(s *Session) { s.IsLoading = true })
}

func (m *Manager) clearLoading() {
	m.update(func(s *Session) { s.IsLoading = false })
}

// update applies a mutation and notifies subscribers outside the lock.
func (m *Manager) update(mutate func(*Session)) {
	m.mu.Lock()
	mutate(&m.sess)
	snapshot := m.sess
	subs := make([]func(Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
