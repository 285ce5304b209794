// Package response writes the JSON envelope every endpoint answers with.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Message: message, Data: data})
}

// Fail writes an error envelope.
func Fail(c *gin.Context, status int, message, detail string) {
	c.JSON(status, Envelope{Message: message, Error: detail})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message, detail string) {
	c.AbortWithStatusJSON(status, Envelope{Message: message, Error: detail})
}
