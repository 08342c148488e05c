package middleware

import (
	"net/http"
	"time"

	"clubhouse/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const loggerKey = "logger"

// LoggerMiddleware attaches a request-scoped logrus entry and logs the outcome
// of every request.
func LoggerMiddleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		entry := log.WithFields(logrus.Fields{
			"http.req.path":   c.Request.URL.Path,
			"http.req.method": c.Request.Method,
			"http.req.id":     requestID,
		})
		c.Set(loggerKey, entry)
		c.Header("X-Request-ID", requestID)

		c.Next()

		fields := logrus.Fields{
			"http.resp.took_ms": time.Since(start).Milliseconds(),
			"http.resp.status":  c.Writer.Status(),
			"http.resp.bytes":   c.Writer.Size(),
		}
		if user := CurrentSession(c).User; user != nil {
			fields["user_id"] = user.ID
		}
		entry.WithFields(fields).Debug("request complete")
	}
}

// RequestLogger returns the entry set by LoggerMiddleware, or a standard
// logger entry when the middleware did not run.
func RequestLogger(c *gin.Context) logrus.FieldLogger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}
	return logrus.StandardLogger()
}

// Recovery turns panics into the generic 500 page
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		RequestLogger(c).WithField("panic", recovered).Error("recovered from panic")
		view.RenderError(c, http.StatusInternalServerError)
		c.Abort()
	})
}
