package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appctx "gyh/internal/core/context"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Trace installs request and trace IDs, honoring IDs forwarded by a
// proxy so one trace spans both sides. The IDs are echoed back in the
// response headers.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := headerOrNew(c, HeaderRequestID)
		traceID := headerOrNew(c, HeaderTraceID)

		trace := &appctx.TraceContext{
			TraceID:   traceID,
			SpanID:    uuid.New().String()[:16],
			RequestID: requestID,
		}
		c.Request = c.Request.WithContext(appctx.WithTrace(c.Request.Context(), trace))

		// Handlers read these via gin keys.
		c.Set("trace_id", traceID)
		c.Set("request_id", requestID)

		c.Header(HeaderRequestID, requestID)
		c.Header(HeaderTraceID, traceID)

		c.Next()
	}
}

func headerOrNew(c *gin.Context, header string) string {
	if v := c.GetHeader(header); v != "" {
		return v
	}
	return uuid.New().String()
}
