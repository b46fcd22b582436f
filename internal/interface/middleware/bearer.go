package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emartsoft/login-service/pkg/helpers"
	"github.com/emartsoft/login-service/pkg/response"
)

// Context keys set by BearerAuth.
const (
	CtxAccountIDKey = "accountID"
	CtxRolesKey     = "accountRoles"
)

// BearerAuth validates the Authorization: Bearer token and injects the
// account ID and roles into the Gin context.
func BearerAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Error(c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(CtxAccountIDKey, claims.Subject)
		c.Set(CtxRolesKey, claims.Roles)
		c.Next()
	}
}
