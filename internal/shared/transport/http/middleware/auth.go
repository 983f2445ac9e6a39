package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"Cataphract/internal/shared/security"
	"Cataphract/internal/shared/transport"
)

const ContextKeyReferee = "referee"

// Auth 校验 Bearer Token，并把裁判标识写进 gin context。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if !strings.HasPrefix(raw, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": transport.Unauthorized,
				"msg":  "missing bearer token",
			})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
		_, claims, err := security.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": transport.Unauthorized,
				"msg":  "invalid token",
			})
			return
		}
		c.Set(ContextKeyReferee, claims.Referee)
		c.Next()
	}
}
