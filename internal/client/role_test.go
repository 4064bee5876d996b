package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tawhidislam22/business-management/internal/models"
	"github.com/tawhidislam22/business-management/internal/session"
)

func newRoleServer(t *testing.T, roles map[string]string) (*RoleResolver, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		email := r.URL.Path[len("/users/role/"):]
		_ = json.NewEncoder(w).Encode(map[string]string{"role": roles[email]})
	}))
	t.Cleanup(srv.Close)

	store, err := session.NewCredentialStore(t.TempDir())
	require.NoError(t, err)
	return NewRoleResolver(New(srv.URL, store, zap.NewNop())), &calls
}

func TestResolveRole(t *testing.T) {
	r, _ := newRoleServer(t, map[string]string{
		"hr@co.com":  "hr",
		"emp@co.com": "employee",
	})

	role, err := r.ResolveRole(context.Background(), "hr@co.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleHR, role)

	role, err = r.ResolveRole(context.Background(), "emp@co.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, role)
}

func TestResolveRoleUnknownDefaultsToEmployee(t *testing.T) {
	r, _ := newRoleServer(t, map[string]string{"odd@co.com": "superuser"})

	role, err := r.ResolveRole(context.Background(), "odd@co.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, role)
}

func TestResolveRoleCaches(t *testing.T) {
	r, calls := newRoleServer(t, map[string]string{"hr@co.com": "hr"})

	_, err := r.ResolveRole(context.Background(), "hr@co.com")
	require.NoError(t, err)
	_, err = r.ResolveRole(context.Background(), "hr@co.com")
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	r.Invalidate("hr@co.com")
	_, err = r.ResolveRole(context.Background(), "hr@co.com")
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestResolveRoleEmptyEmailNeverQueries(t *testing.T) {
	r, calls := newRoleServer(t, nil)

	_, err := r.ResolveRole(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 0, *calls)
	assert.False(t, r.IsHR(context.Background(), ""))
	assert.Equal(t, 0, *calls)
}

func TestIsHR(t *testing.T) {
	r, _ := newRoleServer(t, map[string]string{
		"hr@co.com":  "hr",
		"emp@co.com": "employee",
	})

	assert.True(t, r.IsHR(context.Background(), "hr@co.com"))
	assert.False(t, r.IsHR(context.Background(), "emp@co.com"))
}
