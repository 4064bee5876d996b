package client

import (
	"github.com/tawhidislam22/business-management/internal/models"
	"github.com/tawhidislam22/business-management/internal/session"
)

// GuardDecision is what a route guard tells the shell to do.
type GuardDecision int

const (
	// GuardLoading means identity or role resolution is still in flight;
	// show a loading indicator, make no redirect decision yet.
	GuardLoading GuardDecision = iota
	// GuardRender means the protected content may be shown.
	GuardRender
	// GuardRedirectLogin sends the visitor to the login entry point,
	// remembering where they wanted to go.
	GuardRedirectLogin
	// GuardRedirectHome sends an authenticated visitor with the wrong
	// role to the default landing page, never back to login.
	GuardRedirectHome
)

// Guard decides access to a role-scoped destination. requiredRole nil
// means "any authenticated user".
func Guard(sess session.Session, requiredRole *models.UserRole) GuardDecision {
	if sess.IsLoading {
		return GuardLoading
	}
	if sess.User == nil {
		return GuardRedirectLogin
	}
	if requiredRole != nil && (sess.Role == nil || *sess.Role != *requiredRole) {
		return GuardRedirectHome
	}
	return GuardRender
}
