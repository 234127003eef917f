package utils

import "github.com/gin-gonic/gin"

// Envelope is the uniform response body: success mirrors the status code so
// clients can branch without inspecting it.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// Send writes the response envelope with success = status < 400.
func Send(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Status:  status,
		Message: message,
		Success: status < 400,
		Data:    data,
	})
}
