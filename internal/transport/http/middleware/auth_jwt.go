package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"products-api/internal/core/auth"
	"products-api/internal/transport/http/response"
)

const KeyClaims = "claims"

// AuthJWT rejects the request before any business logic runs: 401 when the
// token is missing or invalid, 403 when the claim set lacks the required role.
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Message{Message: "missing token"})
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Message{Message: "invalid token"})
			return
		}
		if requireRole != "" && !claims.HasRole(requireRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Message{Message: "forbidden"})
			return
		}
		c.Set(KeyClaims, claims)
		c.Next()
	}
}
