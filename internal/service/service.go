// Package service holds the blog's application logic: registration and
// sessions, the admin guard, and post and comment management. Callers pass the
// caller's identity explicitly; nothing here reads ambient request state.
package service

import (
	"context"
	"time"

	"blog_system/internal/domain"
)

// Repository is the persistence contract. Missing rows are reported as
// domain.ErrNotFound and unique violations as domain.ErrDuplicateEmail or
// domain.ErrDuplicateTitle; every other error is an infrastructure failure.
type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	UserByID(ctx context.Context, id uint) (domain.User, error)
	UserByEmail(ctx context.Context, email string) (domain.User, error)

	ListPosts(ctx context.Context) ([]domain.BlogPost, error)
	PostByID(ctx context.Context, id uint) (domain.BlogPost, error)
	CreatePost(ctx context.Context, post *domain.BlogPost) error
	UpdatePost(ctx context.Context, id uint, fields domain.PostFields) (domain.BlogPost, error)
	DeletePost(ctx context.Context, id uint) error

	CreateComment(ctx context.Context, comment *domain.Comment) error
	CommentsByPost(ctx context.Context, postID uint) ([]domain.Comment, error)
}

// SessionStore maps session ids to user ids
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (userID uint, ok bool, err error)
	Delete(ctx context.Context, sessionID string) error
}

// Cache is an optional JSON cache for read paths
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type noCache struct{}

func (noCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (noCache) Delete(context.Context, ...string) error { return nil }
