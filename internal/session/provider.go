// Package session holds the client-side source of truth for "who is
// logged in". A Manager bridges an identity provider's asynchronous
// state-change events to application state and keeps the bearer
// credential used for API calls.
package session

import "context"

// User is the provider's view of a signed-in identity.
type User struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// Event is a state-change notification from the identity provider.
// User is nil when the event is a sign-out.
type Event struct {
	User *User
}

// Provider abstracts the third-party identity provider. Implementations
// must emit an Event on every sign-in, sign-out and credential refresh.
// StateChanges has single-subscriber semantics: the channel belongs to
// the Manager and is closed when the provider shuts down.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*User, error)
	SignInWithFederatedProvider(ctx context.Context) (*User, error)
	CreateAccount(ctx context.Context, email, password string) (*User, error)
	UpdateProfile(ctx context.Context, displayName, photoURL string) error
	SignOut(ctx context.Context) error
	StateChanges() <-chan Event
}

// TokenIssuer exchanges a provider identity for backend bearer
// credentials.
type TokenIssuer interface {
	IssueToken(ctx context.Context, email string) (access, refresh string, err error)
}
