// Package response writes the JSON envelope every API endpoint returns.
// Successful calls carry the payload under "data"; failures carry a
// machine-readable code and a human-readable message under "error".
package response

import "github.com/gin-gonic/gin"

type Body struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success writes data wrapped in the standard envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Body{Success: true, Data: data})
}

// Error writes a failure envelope with a stable error code clients can
// switch on, such as NOT_FOUND or BOOKING_CONFLICT.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, Body{Success: false, Error: &ErrorBody{Code: code, Message: message}})
}

// ErrorWithDetails is Error with an extra details payload, used for
// field-level validation feedback.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, Body{Success: false, Error: &ErrorBody{Code: code, Message: message, Details: details}})
}
