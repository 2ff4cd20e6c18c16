package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"blog_system/internal/domain"  // Importing domain models
	"blog_system/internal/service" // Authorization guard

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware rejects callers whose identity does not hold the admin role
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := service.RequireAdmin(CurrentIdentity(c))
		switch {
		case err == nil:
			c.Next() // If admin, proceed to the next handler
		case errors.Is(err, domain.ErrUnauthenticated):
			// No session, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "redirect": "/login"})
		default:
			// Not an admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		}
	}
}
