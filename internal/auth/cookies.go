package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SetSessionCookies attaches the access and refresh tokens as HttpOnly
// cookies. SameSite=Lax keeps the cookies off cross-site requests.
func SetSessionCookies(c *gin.Context, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, accessToken, int(accessTTL.Seconds()), "/", "", false, true)
	c.SetCookie(RefreshTokenCookie, refreshToken, int(refreshTTL.Seconds()), "/", "", false, true)
}

// SetAccessCookie replaces only the access token cookie, used by the
// refresh endpoint.
func SetAccessCookie(c *gin.Context, accessToken string, accessTTL time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, accessToken, int(accessTTL.Seconds()), "/", "", false, true)
}

func ClearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", false, true)
}
