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
	"homeserve.backend/internal/domain/entities"
	"homeserve.backend/pkg/jwt"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *jwt.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)

	r := gin.New()
	r.Use(AuthMiddleware(jwtService))
	r.GET("/whoami", func(c *gin.Context) {
		actor, ok := GetActor(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role, "name": actor.DisplayName})
	})
	return r, jwtService
}

func bearerFor(t *testing.T, jwtService *jwt.JWTService, userID uuid.UUID, email, role string) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(userID, email, role)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r, jwtService := newAuthRouter(t)
	userID := uuid.New()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(AuthorizationHeader, bearerFor(t, jwtService, userID, "jane@example.com", "provider"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "provider")
	assert.Contains(t, w.Body.String(), "jane@example.com")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(AuthorizationHeader, "Token abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization format")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(AuthorizationHeader, "Bearer not.a.token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	expired := jwt.NewJWTService("test-secret", -time.Minute, time.Hour)
	valid := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)

	r := gin.New()
	r.Use(AuthMiddleware(valid))
	r.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(AuthorizationHeader, bearerFor(t, expired, uuid.New(), "x@example.com", "customer"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)

	r := gin.New()
	r.Use(AuthMiddleware(jwtService))
	admin := r.Group("/admin", RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	provider := r.Group("/provider", RequireProvider())
	provider.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name string
		path string
		role string
		want int
	}{
		{"admin reaches admin route", "/admin/ping", "admin", http.StatusOK},
		{"provider blocked from admin route", "/admin/ping", "provider", http.StatusForbidden},
		{"customer blocked from admin route", "/admin/ping", "customer", http.StatusForbidden},
		{"provider reaches provider route", "/provider/ping", "provider", http.StatusOK},
		{"customer blocked from provider route", "/provider/ping", "customer", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(AuthorizationHeader, bearerFor(t, jwtService, uuid.New(), "u@example.com", tt.role))
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetActor_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetActor(c)
	assert.False(t, ok)

	c.Set(UserIDKey, uuid.New())
	_, ok = GetActor(c)
	assert.False(t, ok, "role still missing")

	c.Set(UserRoleKey, "customer")
	actor, ok := GetActor(c)
	assert.True(t, ok)
	assert.Equal(t, entities.UserRoleCustomer, actor.Role)
}
