package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	t.Run("Generate and parse", func(t *testing.T) {
		token, err := GenerateAccessToken("64f0c7e2a1b2c3d4e5f60718", "test@example.com", time.Hour)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := ParseAccessToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "64f0c7e2a1b2c3d4e5f60718", claims.UserID)
		assert.Equal(t, "test@example.com", claims.Email)
	})

	t.Run("Expired token rejected", func(t *testing.T) {
		token, err := GenerateAccessToken("64f0c7e2a1b2c3d4e5f60718", "test@example.com", -time.Minute)
		assert.NoError(t, err)

		_, err = ParseAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		_, err := ParseAccessToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestGenerateAccessToken_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateAccessToken("id", "a@b.c", time.Hour)
	assert.Error(t, err)
}

func TestExtractAccessToken(t *testing.T) {
	t.Run("Cookie Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie_token"})
		// Add header as well to ensure cookie takes precedence
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "cookie_token", ExtractAccessToken(req))
	})

	t.Run("Header Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("Empty Cookie Falls Back to Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: ""})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		assert.Empty(t, ExtractAccessToken(req))
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")

		assert.Empty(t, ExtractAccessToken(req))
	})
}
