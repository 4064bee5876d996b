package session

import "errors"

// Typed identity-provider errors. Provider implementations map their raw
// failures onto these so callers can branch without string matching.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPopupClosed        = errors.New("sign-in popup closed")
	ErrFederatedAuth      = errors.New("federated sign-in failed")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password too weak")
	ErrNoActiveSession    = errors.New("no active session")
)
