package middleware

import (
	"context"  // Context for identity lookups
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"blog_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

const (
	SessionCookie = "session"  // Cookie carrying the session token
	IdentityKey   = "identity" // Gin context key of the resolved *domain.Identity
)

// IdentityResolver turns a session token into the identity it belongs to
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, token string) (*domain.Identity, error)
}

// TokenFromRequest reads the session token from the Authorization header or the session cookie
func TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization") // Get Authorization header
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
	}
	if token, err := c.Cookie(SessionCookie); err == nil {
		return token // Fall back to the cookie
	}
	return ""
}

// SessionMiddleware resolves the caller's identity and stores it in the context.
// Requests without a valid session continue anonymously.
func SessionMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolver.CurrentIdentity(c.Request.Context(), TokenFromRequest(c))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(), // Route being served
				"error": err.Error(),  // Error message
			}).Error("Session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
			return
		}
		if identity != nil {
			c.Set(IdentityKey, identity) // Store identity in context
		}
		c.Next() // Proceed to the next handler
	}
}

// CurrentIdentity returns the identity stored by SessionMiddleware, or nil
func CurrentIdentity(c *gin.Context) *domain.Identity {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, _ := v.(*domain.Identity)
	return identity
}
