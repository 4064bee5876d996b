package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/tawhidislam22/business-management/internal/models"
)

// RoleResolver looks up the coarse role for an email and caches the
// answer for the rest of the session. Unknown or missing roles resolve to
// employee. Implements session.RoleResolver.
type RoleResolver struct {
	api *Client

	mu    sync.Mutex
	cache map[string]models.UserRole
}

func NewRoleResolver(api *Client) *RoleResolver {
	return &RoleResolver{api: api, cache: map[string]models.UserRole{}}
}

func (r *RoleResolver) ResolveRole(ctx context.Context, email string) (models.UserRole, error) {
	if email == "" {
		return "", fmt.Errorf("no email to resolve a role for")
	}

	r.mu.Lock()
	if role, ok := r.cache[email]; ok {
		r.mu.Unlock()
		return role, nil
	}
	r.mu.Unlock()

	var resp struct {
		Role models.UserRole `json:"role"`
	}
	if err := r.api.Get(ctx, "/users/role/"+email, &resp); err != nil {
		return "", err
	}

	role := resp.Role
	if !role.Valid() {
		role = models.RoleEmployee
	}

	r.mu.Lock()
	r.cache[email] = role
	r.mu.Unlock()
	return role, nil
}

// IsHR resolves the role and reports whether it is HR. Any failure counts
// as not-HR.
func (r *RoleResolver) IsHR(ctx context.Context, email string) bool {
	role, err := r.ResolveRole(ctx, email)
	return err == nil && role == models.RoleHR
}

// Invalidate drops the cached role for an email, forcing the next lookup
// to hit the backend. Called on sign-out.
func (r *RoleResolver) Invalidate(email string) {
	r.mu.Lock()
	delete(r.cache, email)
	r.mu.Unlock()
}
