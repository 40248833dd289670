package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/models"
)

// RequireRoles allows the request through only when the authenticated role
// is in roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := Identity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !slices.Contains(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
	}
}
