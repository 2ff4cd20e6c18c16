package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"blog_system/internal/domain"

	"github.com/sirupsen/logrus"
)

const allPostsKey = "posts:all"

func postKey(id uint) string {
	return "posts:" + strconv.FormatUint(uint64(id), 10)
}

// Content manages posts and comments
type Content struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
	log      logrus.FieldLogger

	// cacheMu orders fills against invalidations; gen counts invalidations
	cacheMu sync.Mutex
	gen     uint64
}

// NewContent builds the content service; cache may be nil
func NewContent(repo Repository, cache Cache, cacheTTL time.Duration, log logrus.FieldLogger) *Content {
	if cache == nil {
		cache = noCache{}
	}
	return &Content{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
		log:      log,
	}
}

// ListPosts returns every post, newest first
func (s *Content) ListPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	if s.cached(ctx, allPostsKey, &posts) {
		return posts, nil
	}
	gen := s.generation()
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	s.store(ctx, gen, allPostsKey, posts)
	return posts, nil
}

// GetPost returns one post with its comments
func (s *Content) GetPost(ctx context.Context, id uint) (domain.BlogPost, error) {
	var post domain.BlogPost
	if s.cached(ctx, postKey(id), &post) {
		return post, nil
	}
	gen := s.generation()
	post, err := s.repo.PostByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.BlogPost{}, err
	}
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("failed to get post: %w", err)
	}
	s.store(ctx, gen, postKey(id), post)
	return post, nil
}

// CreatePost publishes a new post authored by identity
func (s *Content) CreatePost(ctx context.Context, identity *domain.Identity, fields domain.PostFields) (domain.BlogPost, error) {
	if err := RequireAdmin(identity); err != nil {
		return domain.BlogPost{}, err
	}
	if err := fields.Validate(); err != nil {
		return domain.BlogPost{}, err
	}

	now := s.now()
	post := domain.BlogPost{
		AuthorID:  identity.ID,
		Date:      now.Format(domain.DateLayout),
		CreatedAt: now,
	}
	fields.Apply(&post)
	if err := s.repo.CreatePost(ctx, &post); err != nil {
		if errors.Is(err, domain.ErrDuplicateTitle) {
			return domain.BlogPost{}, err
		}
		return domain.BlogPost{}, fmt.Errorf("failed to create post: %w", err)
	}
	post.Author = domain.User{ID: identity.ID, Email: identity.Email, Name: identity.Name, Role: identity.Role}

	s.log.WithFields(logrus.Fields{
		"user_id": identity.ID,
		"post_id": post.ID,
	}).Info("Post created")
	s.invalidate(ctx, allPostsKey)
	return post, nil
}

// UpdatePost overwrites title, subtitle, body and image of a post
func (s *Content) UpdatePost(ctx context.Context, identity *domain.Identity, id uint, fields domain.PostFields) (domain.BlogPost, error) {
	if err := s.requireAdminFor(ctx, identity, id); err != nil {
		return domain.BlogPost{}, err
	}
	if err := fields.Validate(); err != nil {
		return domain.BlogPost{}, err
	}

	post, err := s.repo.UpdatePost(ctx, id, fields)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateTitle) {
		return domain.BlogPost{}, err
	}
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("failed to update post: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": identity.ID,
		"post_id": id,
	}).Info("Post updated")
	s.invalidate(ctx, allPostsKey, postKey(id))
	return post, nil
}

// DeletePost removes a post together with its comments
func (s *Content) DeletePost(ctx context.Context, identity *domain.Identity, id uint) error {
	if err := s.requireAdminFor(ctx, identity, id); err != nil {
		return err
	}

	err := s.repo.DeletePost(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": identity.ID,
		"post_id": id,
	}).Info("Post deleted")
	s.invalidate(ctx, allPostsKey, postKey(id))
	return nil
}

// AddComment attaches a comment by identity to a post. A nil identity yields
// domain.ErrUnauthenticated so the caller can send the user to log in.
func (s *Content) AddComment(ctx context.Context, identity *domain.Identity, postID uint, text string) (domain.Comment, error) {
	if identity == nil {
		return domain.Comment{}, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(text) == "" {
		return domain.Comment{}, domain.ErrInvalidInput
	}

	comment := domain.Comment{
		PostID:    postID,
		AuthorID:  identity.ID,
		Text:      text,
		CreatedAt: s.now(),
	}
	err := s.repo.CreateComment(ctx, &comment)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Comment{}, err
	}
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Author = domain.User{ID: identity.ID, Email: identity.Email, Name: identity.Name, Role: identity.Role}

	s.log.WithFields(logrus.Fields{
		"user_id":    identity.ID,
		"post_id":    postID,
		"comment_id": comment.ID,
	}).Info("Comment added")
	s.invalidate(ctx, postKey(postID))
	return comment, nil
}

// Comments lists the comments of a post, oldest first
func (s *Content) Comments(ctx context.Context, postID uint) ([]domain.Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.repo.CommentsByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// requireAdminFor runs the admin guard for a mutation of post id. A refused
// caller gets domain.ErrNotFound for a missing post; the lookup is read-only.
func (s *Content) requireAdminFor(ctx context.Context, identity *domain.Identity, id uint) error {
	guardErr := RequireAdmin(identity)
	if guardErr == nil {
		return nil
	}
	if _, err := s.repo.PostByID(ctx, id); errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return guardErr
}

// cached reports a cache hit; cache failures count as misses
func (s *Content) cached(ctx context.Context, key string, dest any) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Cache read failed")
		return false
	}
	return found
}

func (s *Content) generation() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.gen
}

// store fills key unless an invalidation ran since gen was read; a read that
// raced a write is served but never cached
func (s *Content) store(ctx context.Context, gen uint64, key string, value any) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if gen != s.gen {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

func (s *Content) invalidate(ctx context.Context, keys ...string) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.gen++
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.WithError(err).WithField("keys", keys).Warn("Cache invalidation failed")
	}
}
