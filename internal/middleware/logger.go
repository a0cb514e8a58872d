package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorLogger logs request errors in key=value form and recovers from
// panics with a JSON 500.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logRequestError(c, start, "panic", err.Error())

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal server error",
					},
				})
				c.Abort()
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					logRequestError(c, start, "http_error", fmt.Sprintf("status=%d", c.Writer.Status()))
				}
				return
			}

			for _, err := range c.Errors {
				logRequestError(c, start, fmt.Sprintf("%v", err.Type), err.Error())
			}
		}()

		c.Next()
	}
}

func logRequestError(c *gin.Context, start time.Time, errType string, message string) {
	log.Printf(
		"request_error type=%s status=%d method=%s path=%s client_ip=%s user_id=%d request_id=%s latency=%s error=%q",
		errType,
		c.Writer.Status(),
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		c.GetInt64("user_id"),
		requestID(c),
		time.Since(start),
		message,
	)
	if errType == "panic" {
		log.Printf("request_error_stack request_id=%s stack=%s", requestID(c), debug.Stack())
	}
}

func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = c.GetHeader("X-Request-Id")
	}
	return id
}
