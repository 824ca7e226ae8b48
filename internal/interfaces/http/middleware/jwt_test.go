package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlens/backend/internal/infrastructure/auth"
	"github.com/wanderlens/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "wanderlens",
	})
}

func newAuthedRouter(jwtService *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	for _, m := range extra {
		router.Use(m)
	}
	router.GET("/api/v1/photos", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetJWTUserID(c),
			"role":    GetJWTRole(c),
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("valid token passes and populates context", func(t *testing.T) {
		userID := uuid.New()
		token, _, err := jwtService.GenerateToken(userID, "traveler@example.com", "user")
		require.NoError(t, err)

		router := newAuthedRouter(jwtService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/photos", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("missing header", func(t *testing.T) {
		router := newAuthedRouter(jwtService)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/photos", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		router := newAuthedRouter(jwtService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/photos", nil)
		req.Header.Set(AuthHeaderKey, "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("invalid token", func(t *testing.T) {
		router := newAuthedRouter(jwtService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/photos", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"garbage")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("skip path bypasses auth", func(t *testing.T) {
		router := newAuthedRouter(jwtService)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("admin role passes", func(t *testing.T) {
		token, _, err := jwtService.GenerateToken(uuid.New(), "admin@example.com", "admin")
		require.NoError(t, err)

		router := newAuthedRouter(jwtService, RequireAdmin())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/photos", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("user role rejected", func(t *testing.T) {
		token, _, err := jwtService.GenerateToken(uuid.New(), "traveler@example.com", "user")
		require.NoError(t, err)

		router := newAuthedRouter(jwtService, RequireAdmin())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/photos", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})
}
