package api

import (
	"net/http" // HTTP status codes
	"time"     // Cookie lifetime

	"blog_system/internal/domain"     // Importing domain models
	"blog_system/internal/middleware" // Session cookie and identity helpers
	"blog_system/internal/service"    // Auth service

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=100"` // Email must be provided
	Name     string `json:"name" binding:"required,max=100"`        // Display name must be provided
	Password string `json:"password" binding:"required"`            // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// CookieOptions controls the session cookie written on register and login
type CookieOptions struct {
	Secure bool          // Send only over HTTPS
	TTL    time.Duration // Cookie lifetime, matches the session lifetime
}

// RegisterHandler creates an account and logs it in
func RegisterHandler(auth *service.Auth, cookie CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		sess, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		setSessionCookie(c, sess.Token, cookie)
		c.JSON(http.StatusCreated, sess)
	}
}

// LoginHandler checks the credentials and opens a session
func LoginHandler(auth *service.Auth, cookie CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		sess, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		setSessionCookie(c, sess.Token, cookie)
		c.JSON(http.StatusOK, sess)
	}
}

// LogoutHandler ends the caller's session; calling it without one is fine
func LogoutHandler(auth *service.Auth, cookie CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSessionCookie(c, cookie)
		if err := auth.Logout(c.Request.Context(), middleware.TokenFromRequest(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": "/posts"})
	}
}

// MeHandler returns the identity behind the current session
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.CurrentIdentity(c)
		if identity == nil {
			respondError(c, domain.ErrUnauthenticated)
			return
		}
		c.JSON(http.StatusOK, identity)
	}
}

func setSessionCookie(c *gin.Context, token string, cookie CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(cookie.TTL.Seconds()), "/", "", cookie.Secure, true)
}

func clearSessionCookie(c *gin.Context, cookie CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", cookie.Secure, true)
}
