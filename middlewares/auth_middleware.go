package middlewares

import (
	"net/http"
	"strings"

	"github.com/barrelborn/digital-menu/utils"
	"github.com/gin-gonic/gin"
)

// TokenAuthorizer validates admin bearer tokens.
type TokenAuthorizer interface {
	Authorize(token string) (*utils.AdminClaims, error)
}

// AdminAuthMiddleware requires "Authorization: Bearer <token>" from a
// successful login.
func AdminAuthMiddleware(auth TokenAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.RespondMessage(c, http.StatusUnauthorized, "Authorization header missing")
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			utils.RespondMessage(c, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := auth.Authorize(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.RespondMessage(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAdminAuth enforces AdminAuthMiddleware only when required.
func OptionalAdminAuth(required bool, auth TokenAuthorizer) gin.HandlerFunc {
	if required {
		return AdminAuthMiddleware(auth)
	}
	return func(c *gin.Context) { c.Next() }
}
