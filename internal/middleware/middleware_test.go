package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shopcore-be/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	newRouter := func(captured *auth.Principal, ok *bool) *gin.Engine {
		r := gin.New()
		r.Use(AuthMiddleware())
		r.GET("/whoami", func(c *gin.Context) {
			p, found := auth.PrincipalFrom(c.Request.Context())
			*captured = p
			*ok = found
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("Valid Token Sets Principal", func(t *testing.T) {
		var p auth.Principal
		var ok bool
		r := newRouter(&p, &ok)

		token, err := auth.GenerateJWT(42, "admin", "a@example.com", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, ok)
		assert.Equal(t, uint(42), p.ID)
		assert.Equal(t, auth.RoleAdmin, p.Role)
	})

	t.Run("Missing Token Stays Anonymous", func(t *testing.T) {
		var p auth.Principal
		var ok bool
		r := newRouter(&p, &ok)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		// The request still goes through; the service layer decides access
		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, ok)
	})

	t.Run("Garbage Token Stays Anonymous", func(t *testing.T) {
		var p auth.Principal
		var ok bool
		r := newRouter(&p, &ok)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, ok)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Generates When Absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("Propagates When Provided", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	})
}

func TestResolveRateTier(t *testing.T) {
	gin.SetMode(gin.TestMode)

	makeCtx := func(path string, headers map[string]string) *gin.Context {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, path, nil)
		for k, v := range headers {
			c.Request.Header.Set(k, v)
		}
		return c
	}

	t.Run("Strict For Login", func(t *testing.T) {
		_, burst, tier := resolveRateTier(makeCtx("/auth/login", nil))
		assert.Equal(t, "strict", tier)
		assert.Equal(t, burstStrict, burst)
	})

	t.Run("Strict For Payments", func(t *testing.T) {
		_, _, tier := resolveRateTier(makeCtx("/payments", nil))
		assert.Equal(t, "strict", tier)
	})

	t.Run("General By Default", func(t *testing.T) {
		_, _, tier := resolveRateTier(makeCtx("/products", nil))
		assert.Equal(t, "general", tier)
	})

	t.Run("Internal With Service Key", func(t *testing.T) {
		t.Setenv("INTERNAL_SECRET_KEY", "svc-key")
		_, _, tier := resolveRateTier(makeCtx("/orders/place", map[string]string{"X-Service-Auth": "svc-key"}))
		assert.Equal(t, "internal", tier)
	})

	t.Run("Wrong Service Key Falls Through", func(t *testing.T) {
		t.Setenv("INTERNAL_SECRET_KEY", "svc-key")
		_, _, tier := resolveRateTier(makeCtx("/products", map[string]string{"X-Service-Auth": "nope"}))
		assert.Equal(t, "general", tier)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.POST("/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(device string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.Header.Set("X-Device-ID", device)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("Allows Within Burst Then Throttles", func(t *testing.T) {
		for i := 0; i < burstStrict; i++ {
			assert.Equal(t, http.StatusOK, hit("device-throttle"))
		}
		assert.Equal(t, http.StatusTooManyRequests, hit("device-throttle"))
	})

	t.Run("Separate Identities Have Separate Quotas", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, hit("device-fresh"))
	})
}
