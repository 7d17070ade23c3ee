package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assetverse/assetverse-backend/internal/auth"
)

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// RequireRoles checks that the authenticated user carries one of the allowed
// roles. HR-only routes use RequireRoles(RoleHR).
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get("user")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
			return
		}

		user, ok := userVal.(auth.User)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid user object"})
			return
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	}
}
