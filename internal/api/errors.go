package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"blog_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// respondError maps a service error onto a status code and JSON body.
// Errors outside the domain set are logged and answered with 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "You've already signed up with that email, log in instead!", "redirect": "/login"})
	case errors.Is(err, domain.ErrUnknownEmail):
		c.JSON(http.StatusNotFound, gin.H{"error": "That email does not exist, please try again."})
	case errors.Is(err, domain.ErrBadPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Password incorrect, please try again."})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You need to login or register first.", "redirect": "/login"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrDuplicateTitle):
		c.JSON(http.StatusConflict, gin.H{"error": "A post with that title already exists"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	default:
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method, // HTTP method
			"path":   c.FullPath(),     // Route being served
			"error":  err.Error(),      // Error message
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
