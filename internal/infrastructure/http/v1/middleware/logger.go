package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gyh/pkg/logger"
)

// Logger logs one line per request with latency and status. Health
// probes are skipped, they fire every few seconds and drown the log.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/health") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		log.WithContext(c.Request.Context()).Infow("http request",
			"method", c.Request.Method,
			"path", path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"error", c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
