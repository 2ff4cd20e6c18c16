package api

import (
	"blog_system/internal/middleware" // Session and admin middleware
	"blog_system/internal/service"    // Auth and content services

	"github.com/gin-gonic/gin" // Gin web framework
)

// RouterOptions tunes the engine built by NewRouter
type RouterOptions struct {
	Cookie         CookieOptions // Session cookie settings
	TrustedProxies []string      // Proxies allowed to set forwarding headers, nil trusts none
}

// NewRouter wires every route onto a gin engine
func NewRouter(auth *service.Auth, content *service.Content, opts RouterOptions) (*gin.Engine, error) {
	r := gin.Default() // Create Gin router
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(middleware.SessionMiddleware(auth)) // Resolve the caller on every request

	// Public routes
	r.GET("/posts", ListPostsHandler(content))
	r.GET("/posts/:id", GetPostHandler(content))
	r.GET("/posts/:id/comments", ListCommentsHandler(content))
	r.POST("/register", RegisterHandler(auth, opts.Cookie))
	r.POST("/login", LoginHandler(auth, opts.Cookie))
	r.POST("/logout", LogoutHandler(auth, opts.Cookie))
	r.GET("/logout", LogoutHandler(auth, opts.Cookie))
	r.GET("/me", MeHandler())

	// Logged-in users
	r.POST("/posts/:id/comments", AddCommentHandler(content))

	// Admin routes; edit and delete run the guard inside the service so a
	// missing post answers 404 whoever asks
	r.POST("/posts", middleware.AdminOnlyMiddleware(), CreatePostHandler(content))
	r.PUT("/posts/:id", UpdatePostHandler(content))
	r.DELETE("/posts/:id", DeletePostHandler(content))

	return r, nil
}
