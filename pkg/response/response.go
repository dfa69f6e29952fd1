package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the body carried by every error and status-only response. The
// HTTP status travels in the response code; clients only see the message.
type Envelope struct {
	Message string `json:"message"`
}

// Error writes the error envelope with the given status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Message: message})
}

// AbortError writes the error envelope and stops the handler chain. Used by
// middleware.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Message: message})
}

// Message writes a status-only success body, e.g. after a deletion.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Message: message})
}
