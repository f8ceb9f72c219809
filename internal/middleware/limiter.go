package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit tiers. Auth endpoints get the strict tier: credential
// guessing is the traffic worth slowing down.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

// init starts the background cleanup routine.
func init() {
	go cleanupVisitors()
}

// getVisitor retrieves or creates a rate limiter for the given key.
func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes old entries from the visitors map to prevent
// memory leaks.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimit rejects requests over the per-identity allowance. Identity is
// the authenticated user when available, otherwise the client IP, so
// one busy household NAT does not starve a logged-in user.
func RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, burst, tier := resolveRateTier(c.Request)

		var identity string
		if userID, ok := UserID(c); ok {
			identity = "user:" + userID
		} else {
			ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
			if err != nil {
				ip = c.Request.RemoteAddr
			}
			identity = "ip:" + ip
		}

		key := identity + ":" + tier

		limiter := getVisitor(key, limit, burst)
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": http.StatusText(http.StatusTooManyRequests),
			})
			return
		}

		c.Next()
	}
}

// resolveRateTier determines which rate limit policy applies.
func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if strings.HasPrefix(r.URL.Path, "/api/auth/") {
		return limitStrict, burstStrict, "strict"
	}
	return limitGeneral, burstGeneral, "general"
}
