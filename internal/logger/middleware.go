package logger

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rubenhtun/luxora-store/internal/metrics"
)

var requestCount metrics.Counter

// RequestID assigns an X-Request-ID to every request and threads it
// through the request context for FromCtx.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		ctx := WithRequestID(c.Request.Context(), reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", reqID)

		c.Next()
	}
}

// Access logs each completed request with method, path, status and duration.
func Access() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := metrics.StartTimer()
		requestCount.Inc()

		c.Next()

		FromCtx(c.Request.Context()).Info("incoming request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("duration_ms", timer.Duration()),
			zap.Uint64("served_total", requestCount.Load()),
		)
	}
}
