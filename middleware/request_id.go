// File: middleware/request_id.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID attaches a request id to every response so admin-reported
// failures can be matched to log lines.
func RequestID(c *gin.Context) {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Writer.Header().Set("X-Request-ID", id)
	c.Set("requestID", id)
	c.Next()
}
