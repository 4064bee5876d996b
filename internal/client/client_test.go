package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tawhidislam22/business-management/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.CredentialStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.NewCredentialStore(t.TempDir())
	require.NoError(t, err)

	return New(srv.URL, store, zap.NewNop()), store
}

func TestBearerAttached(t *testing.T) {
	var gotAuth string
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	require.NoError(t, store.SetTokens("tok-1", "ref-1"))

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/anything", &out))
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "yes", out["ok"])
}

func TestNoBearerWhenStoreEmpty(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	}))

	require.NoError(t, c.Get(context.Background(), "/anything", nil))
	assert.Empty(t, gotAuth)
}

func TestRefreshRetryOnce(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ref-old", body["refreshToken"])
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token":        "tok-new",
			"refreshToken": "ref-new",
		})
	})
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Header.Get("Authorization") != "Bearer tok-new" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "expired"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"value": "fresh"})
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("tok-old", "ref-old"))

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/data", &out))

	assert.Equal(t, "fresh", out["value"])
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "tok-new", store.AccessToken())
	assert.Equal(t, "ref-new", store.RefreshToken())
}

func TestRefreshFailureForcesSignOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid refresh token"})
	})
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "expired"})
	})

	c, store := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("tok-old", "ref-old"))

	var forcedOut bool
	c.SetAuthFailureHandler(func(context.Context) { forcedOut = true })

	err := c.Get(context.Background(), "/data", nil)
	require.Error(t, err)

	assert.True(t, forcedOut)
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestNoRefreshWithoutStoredCredential(t *testing.T) {
	var refreshCalled bool
	mux := http.NewServeMux()
	mux.HandleFunc("/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalled = true
	})
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "access denied"})
	})

	c, _ := newTestClient(t, mux)

	var forcedOut bool
	c.SetAuthFailureHandler(func(context.Context) { forcedOut = true })

	err := c.Get(context.Background(), "/data", nil)
	require.Error(t, err)
	assert.False(t, refreshCalled)
	assert.True(t, forcedOut)
}

func TestBackendMessageSurfacedVerbatim(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "asset has open requests"})
	}))

	err := c.Delete(context.Background(), "/assets/1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "asset has open requests", apiErr.Error())
}

func TestIssueToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/jwt", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "emp@co.com", body["email"])
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token":        "tok",
			"refreshToken": "ref",
		})
	}))

	access, refresh, err := c.IssueToken(context.Background(), "emp@co.com")
	require.NoError(t, err)
	assert.Equal(t, "tok", access)
	assert.Equal(t, "ref", refresh)
}
