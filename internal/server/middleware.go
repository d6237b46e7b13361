package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nia-nlu/internal/common/logger"
	"nia-nlu/internal/common/observability"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, honoring one supplied by the
// caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request with outcome and timing.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		log.Info("http request", map[string]interface{}{
			"requestId":  c.GetString("requestID"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"durationMs": time.Since(started).Milliseconds(),
		})
	}
}

// Instrument records otel request metrics per route.
func Instrument(obs *observability.Observability) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		obs.RecordRequest(c.Request.Context(), route, strconv.Itoa(c.Writer.Status()))
		obs.RecordRequestDuration(c.Request.Context(), time.Since(started), route)
	}
}
