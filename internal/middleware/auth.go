package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/models"
	"rhythm-registry/internal/utils"
)

const (
	userIDContextKey = "user_id"
	roleContextKey   = "role"
)

// Authenticate requires "Authorization: Bearer <token>" and attaches the
// caller's user id and role to the context. It aborts with 401 otherwise.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing or invalid Authorization header",
			})
			return
		}

		claims, err := utils.ValidateToken(tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		SetIdentity(c, claims.UserID, claims.Role)
	}
}

// SetIdentity stores an authenticated caller on the context.
func SetIdentity(c *gin.Context, userID int, role models.Role) {
	c.Set(userIDContextKey, userID)
	c.Set(roleContextKey, role)
}

// Identity returns the caller attached by Authenticate.
func Identity(c *gin.Context) (userID int, role models.Role, ok bool) {
	userIDInterface, exists := c.Get(userIDContextKey)
	if !exists {
		return 0, "", false
	}
	userID, ok = userIDInterface.(int)
	if !ok {
		return 0, "", false
	}

	roleInterface, exists := c.Get(roleContextKey)
	if !exists {
		return 0, "", false
	}
	role, ok = roleInterface.(models.Role)
	return userID, role, ok
}
