package middleware

import (
	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

// Errors turns errors attached with c.Error into a single 500 response.
// Error text is exposed in details only outside production.
func Errors(env string) gin.HandlerFunc {
	exposeDetails := env != "production"
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		telemetry.Error("request.failed", map[string]any{
			"request_id": RequestIDFromContext(c),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"error":      last.Err,
			"errors":     len(c.Errors),
		})
		if c.Writer.Written() {
			return
		}

		var details any
		if exposeDetails {
			details = last.Error()
		}
		respond.Internal(c, details)
	}
}
