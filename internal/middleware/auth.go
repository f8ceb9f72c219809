package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rubenhtun/luxora-store/internal/auth"
)

// Keys under which the authenticated user is stored on the gin context.
const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)

// RequireAuth rejects requests without a valid access token. The token
// is read from the session cookie, with a bearer header fallback.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		claims, err := auth.ParseAccessToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated user's ID set by RequireAuth.
func UserID(c *gin.Context) (string, bool) {
	id, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
