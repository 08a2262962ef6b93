package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes {"success": true} merged with the given fields.
func Success(c *gin.Context, status int, fields gin.H) {
	body := make(gin.H, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	c.JSON(status, body)
}

// Plain writes payload with 200 and no success envelope.
func Plain(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
