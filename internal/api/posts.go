package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"blog_system/internal/domain"     // Importing domain models
	"blog_system/internal/middleware" // Identity helpers
	"blog_system/internal/service"    // Content service

	"github.com/gin-gonic/gin" // Gin web framework
)

// CommentRequest represents a new comment
type CommentRequest struct {
	Text string `json:"text" binding:"required"` // Comment text
}

// ListPostsHandler returns posts newest first, paginated
func ListPostsHandler(content *service.Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := content.ListPosts(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		total := len(posts)                             // Total number of posts
		totalPages := (total + pageSize - 1) / pageSize // Calculate total pages
		start, end := total, total                      // Pages past the last one are empty
		if page <= totalPages {
			start = (page - 1) * pageSize    // Offset of the first post on the page
			end = min(start+pageSize, total) // Offset past the last post on the page
		}
		c.JSON(http.StatusOK, gin.H{
			"posts":       posts[start:end], // Posts on this page
			"page":        page,             // Current page
			"page_size":   pageSize,         // Page size
			"total":       total,            // Total number of posts
			"total_pages": totalPages,       // Total pages
		})
	}
}

// GetPostHandler returns a post with its comments
func GetPostHandler(content *service.Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := postID(c)
		if !ok {
			return
		}
		post, err := content.GetPost(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// CreatePostHandler publishes a post as the current admin
func CreatePostHandler(content *service.Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.PostFields // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		post, err := content.CreatePost(c.Request.Context(), middleware.CurrentIdentity(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// UpdatePostHandler edits a post as the current admin
func UpdatePostHandler(content *service.Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := postID(c)
		if !ok {
			return
		}
		var req domain.PostFields
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		post, err := content.UpdatePost(c.Request.Context(), middleware.CurrentIdentity(c), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// DeletePostHandler removes a post and its comments as the current admin
func DeletePostHandler(content *service.Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := postID(c)
		if !ok {
			return
		}
		if err := content.DeletePost(c.Request.Context(), middleware.CurrentIdentity(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post deleted", "redirect": "/posts"})
	}
}

// AddCommentHandler attaches a comment by the current user to a post
func AddCommentHandler(content *service.Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := postID(c)
		if !ok {
			return
		}
		identity := middleware.CurrentIdentity(c)
		if identity == nil {
			// Anonymous visitors are sent to the login page
			c.JSON(http.StatusUnauthorized, gin.H{"error": "You need to login or register to comment.", "redirect": "/login"})
			return
		}
		var req CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		comment, err := content.AddComment(c.Request.Context(), identity, id, req.Text)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

// ListCommentsHandler returns the comments of a post, oldest first
func ListCommentsHandler(content *service.Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := postID(c)
		if !ok {
			return
		}
		comments, err := content.Comments(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": comments})
	}
}

// postID parses the :id path parameter, answering 404 when it is not a post id
func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}
