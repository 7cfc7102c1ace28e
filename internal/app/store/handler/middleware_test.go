package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func signedToken(t *testing.T, role string, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := JWTClaims{
		Email: "admin@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func setupProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	m := NewAuthMiddleware(testJWTSecret)
	router.PATCH("/protected", m.Authenticate(), m.RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("email")})
	})

	return router
}

func doAuthenticated(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidAdminToken(t *testing.T) {
	router := setupProtectedRouter()
	token := signedToken(t, "admin", testJWTSecret, time.Now().Add(time.Hour))

	w := doAuthenticated(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := setupProtectedRouter()

	w := doAuthenticated(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := setupProtectedRouter()
	token := signedToken(t, "admin", testJWTSecret, time.Now().Add(time.Hour))

	w := doAuthenticated(router, "Token "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	router := setupProtectedRouter()
	token := signedToken(t, "admin", "other-secret", time.Now().Add(time.Hour))

	w := doAuthenticated(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router := setupProtectedRouter()
	token := signedToken(t, "admin", testJWTSecret, time.Now().Add(-time.Hour))

	w := doAuthenticated(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InsufficientRole(t *testing.T) {
	router := setupProtectedRouter()
	token := signedToken(t, "customer", testJWTSecret, time.Now().Add(time.Hour))

	w := doAuthenticated(router, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
