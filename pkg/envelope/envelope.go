package envelope

import "github.com/gin-gonic/gin"

// Envelope is the uniform response wrapper used by every endpoint:
// {"status":"success"|"error","data"?,"message"}.
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// OK writes a success envelope with the given payload and message.
func OK(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Envelope{Status: "success", Data: data, Message: message})
}

// Fail writes an error envelope with the given message.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Status: "error", Message: message})
}

// AbortFail writes an error envelope and aborts the handler chain.
func AbortFail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Envelope{Status: "error", Message: message})
}
