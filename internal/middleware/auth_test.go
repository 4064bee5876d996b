package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawhidislam22/business-management/internal/auth"
	"github.com/tawhidislam22/business-management/internal/models"
)

const testSecret = "test-secret"

func newTestRouter(roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/", RequireAuth(testSecret))
	if len(roles) > 0 {
		grp.Use(RequireRole(roles...))
	}
	grp.GET("/ping", func(c *gin.Context) {
		email, _ := CurrentEmail(c)
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := newTestRouter()

	t.Run("no token", func(t *testing.T) {
		w := doRequest(t, r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(t, r, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.NewAccessToken(testSecret, "test", -time.Minute, "emp@co.com", models.RoleEmployee)
		require.NoError(t, err)
		w := doRequest(t, r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.NewAccessToken(testSecret, "test", time.Minute, "emp@co.com", models.RoleEmployee)
		require.NoError(t, err)
		w := doRequest(t, r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "emp@co.com")
	})
}

func TestRequireRole(t *testing.T) {
	r := newTestRouter(models.RoleHR)

	t.Run("employee denied", func(t *testing.T) {
		token, err := auth.NewAccessToken(testSecret, "test", time.Minute, "emp@co.com", models.RoleEmployee)
		require.NoError(t, err)
		w := doRequest(t, r, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("hr allowed", func(t *testing.T) {
		token, err := auth.NewAccessToken(testSecret, "test", time.Minute, "hr@co.com", models.RoleHR)
		require.NoError(t, err)
		w := doRequest(t, r, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
