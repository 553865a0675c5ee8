package middleware

import (
	"time"

	"gemini-research-go/internal/logging"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger logs every HTTP request with latency and status. Credentials
// travel in request bodies, never in the URL, so paths are safe to log.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		extras := log.Fields{
			"status":     c.Writer.Status(),
			"latency_ms": logging.DurationMS(latency),
			"user_agent": c.Request.UserAgent(),
			"method":     method,
			"path":       path,
		}
		// Only generation requests set a model; other lines skip the field.
		if modelVal, ok := c.Get("model"); ok {
			extras["model"] = modelVal
		}
		logging.WithReq(c, extras).Info("http_request")
	}
}
