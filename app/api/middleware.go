package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/internal/logger"
)

// RequestLogger writes one structured line per request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		fields := logger.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(started).String(),
			"client":   c.ClientIP(),
		}
		if c.FullPath() == "" {
			fields["path"] = c.Request.URL.Path
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Warn("request failed", fields)
		case len(c.Errors) > 0:
			fields["errors"] = c.Errors.String()
			log.Info("request completed with errors", fields)
		default:
			log.Debug("request completed", fields)
		}
	}
}

// Recovery turns panics into an INTERNAL_ERROR envelope and logs them.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Warn("panic recovered", logger.Fields{"path": c.Request.URL.Path, "panic": recovered})
		InternalErrorResponse(c, "Unexpected server error")
		c.Abort()
	})
}
