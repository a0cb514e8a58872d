package middleware

import (
	"net/http"
	"strings"

	jwtsvc "vacationstay/internal/pkg/jwt"
	"vacationstay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token on every request and exposes the
// authenticated principal as "user_id" and "role" in the gin context. The
// services below this boundary never read ambient auth state; handlers pass
// the principal down explicitly.
func JWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
