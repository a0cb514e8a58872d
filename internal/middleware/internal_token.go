package middleware

import (
	"log"
	"net/http"
	"strings"

	"vacationstay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// InternalTokenAuth protects internal endpoints (the OAuth gateway
// callback) with a static bearer token. The gateway verifies the provider
// identity; this guard only proves the caller is the gateway.
func InternalTokenAuth(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			logInternalAuthFailure(c, http.StatusServiceUnavailable, "token_not_configured")
			response.Error(c, http.StatusServiceUnavailable, "INTERNAL_AUTH_DISABLED", "Internal token is not configured")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logInternalAuthFailure(c, http.StatusUnauthorized, "missing_auth")
			response.Error(c, http.StatusUnauthorized, "AUTH_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logInternalAuthFailure(c, http.StatusUnauthorized, "invalid_auth_format")
			response.Error(c, http.StatusUnauthorized, "AUTH_INVALID", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		if parts[1] != expected {
			logInternalAuthFailure(c, http.StatusForbidden, "invalid_token")
			response.Error(c, http.StatusForbidden, "AUTH_INVALID", "Invalid internal token")
			c.Abort()
			return
		}

		c.Next()
	}
}

func logInternalAuthFailure(c *gin.Context, status int, reason string) {
	log.Printf("internal_auth status=%d request_id=%s reason=%s", status, requestID(c), reason)
}
