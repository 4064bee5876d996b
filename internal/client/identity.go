package client

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tawhidislam22/business-management/internal/session"
)

// IdentityProvider implements session.Provider against the REST API's
// identity endpoints. It stands in for the hosted identity provider the
// web frontend uses, emitting a state-change event on every sign-in and
// sign-out.
type IdentityProvider struct {
	api    *Client
	events chan session.Event
}

func NewIdentityProvider(api *Client) *IdentityProvider {
	return &IdentityProvider{
		api:    api,
		events: make(chan session.Event, 8),
	}
}

type identityResponse struct {
	User struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		PhotoURL string `json:"photoURL"`
	} `json:"user"`
}

func (p *IdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*session.User, error) {
	var resp identityResponse
	err := p.api.Post(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, session.ErrInvalidCredentials
		}
		return nil, err
	}

	user := p.emitSignIn(resp)
	return user, nil
}

// SignInWithFederatedProvider requires a provider-hosted browser flow,
// which a terminal client cannot open.
func (p *IdentityProvider) SignInWithFederatedProvider(ctx context.Context) (*session.User, error) {
	return nil, session.ErrFederatedAuth
}

func (p *IdentityProvider) CreateAccount(ctx context.Context, email, password string) (*session.User, error) {
	if len(password) < 6 {
		return nil, session.ErrWeakPassword
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	var resp identityResponse
	err := p.api.Post(ctx, "/register", map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
			return nil, session.ErrEmailAlreadyInUse
		}
		return nil, err
	}

	user := p.emitSignIn(resp)
	return user, nil
}

func (p *IdentityProvider) UpdateProfile(ctx context.Context, displayName, photoURL string) error {
	return p.api.Patch(ctx, "/profile", map[string]string{
		"name":     displayName,
		"photoURL": photoURL,
	}, nil)
}

func (p *IdentityProvider) SignOut(ctx context.Context) error {
	refresh := p.api.store.RefreshToken()
	p.events <- session.Event{}
	if refresh == "" {
		return nil
	}
	return p.api.Post(ctx, "/logout", map[string]string{"refreshToken": refresh}, nil)
}

func (p *IdentityProvider) StateChanges() <-chan session.Event {
	return p.events
}

func (p *IdentityProvider) emitSignIn(resp identityResponse) *session.User {
	user := &session.User{
		Email:       resp.User.Email,
		DisplayName: resp.User.Name,
		PhotoURL:    resp.User.PhotoURL,
	}
	p.events <- session.Event{User: user}
	return user
}

// IssueToken exchanges an email for backend bearer credentials
// (POST /jwt). Implements session.TokenIssuer.
func (c *Client) IssueToken(ctx context.Context, email string) (string, string, error) {
	var resp struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Post(ctx, "/jwt", map[string]string{"email": email}, &resp); err != nil {
		return "", "", err
	}
	return resp.Token, resp.RefreshToken, nil
}
