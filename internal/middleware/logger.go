package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every request, records error details for 5xx
// responses, and recovers from handler panics.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logRequest(log, c, start).
					WithField("stack", string(debug.Stack())).
					Error(fmt.Sprintf("panic: %v", recovered))

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal Server Error",
					},
				})
				c.Abort()
				return
			}

			entry := logRequest(log, c, start)
			switch {
			case len(c.Errors) > 0:
				entry.Error(c.Errors.String())
			case c.Writer.Status() >= http.StatusInternalServerError:
				entry.Error("request failed")
			default:
				entry.Info("request completed")
			}
		}()

		c.Next()
	}
}

func logRequest(log *logrus.Logger, c *gin.Context, start time.Time) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"status":     c.Writer.Status(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"query":      c.Request.URL.RawQuery,
		"client_ip":  c.ClientIP(),
		"latency":    time.Since(start).String(),
		"request_id": requestID(c),
	})
}

func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = c.GetHeader("X-Request-Id")
	}
	return id
}
