package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

// Error codes carried in the error envelope.
const (
	CodeValidation   = "validation_error"
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
	CodeConflict     = "conflict"
	CodeInternal     = "internal_error"
)

// InternalMessage is the only message a 500 ever carries.
const InternalMessage = "Something went wrong!"

// ErrorBody is the body of every failed request.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error logs the failure with the request's resume and user context, then
// aborts the chain with the error envelope.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	for key, ctxKey := range map[string]string{"user_id": "userId", "resume_id": "resumeId"} {
		if v := c.GetString(ctxKey); v != "" {
			fields[key] = v
		}
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadRequest rejects invalid input. details is usually a list of field issues.
func BadRequest(c *gin.Context, message string, details interface{}) {
	Error(c, http.StatusBadRequest, CodeValidation, message, details)
}

// NotFound covers both missing and not-owned resources.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

// Internal writes the generic 500; details is dropped by callers in production.
func Internal(c *gin.Context, details interface{}) {
	Error(c, http.StatusInternalServerError, CodeInternal, InternalMessage, details)
}
