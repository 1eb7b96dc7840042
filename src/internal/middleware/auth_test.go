package middleware

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

func serveWith(m *AuthMiddleware, authHeader string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/protected", m.RequireServiceToken(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "scraper",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestRequireServiceTokenDisabledWithoutKey(t *testing.T) {
	w := serveWith(NewAuthMiddleware(""), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireServiceTokenAcceptsValidToken(t *testing.T) {
	w := serveWith(NewAuthMiddleware("topsecret"), "Bearer "+signedToken(t, "topsecret"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireServiceTokenRejectsMissingToken(t *testing.T) {
	w := serveWith(NewAuthMiddleware("topsecret"), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireServiceTokenRejectsWrongKey(t *testing.T) {
	w := serveWith(NewAuthMiddleware("topsecret"), "Bearer "+signedToken(t, "other"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
