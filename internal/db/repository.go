package db

import (
	"context" // Context for request-scoped queries
	"errors"  // Error matching
	"fmt"     // Error wrapping

	"blog_system/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Row locking and association clauses
)

// Repository stores users, posts and comments through gorm
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps an open gorm connection
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a user; the unique email index makes the check atomic with the insert
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return translate(err, "create user", domain.ErrDuplicateEmail)
	}
	return nil
}

// UserByID fetches a user by primary key
func (r *Repository) UserByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return domain.User{}, translate(err, "get user", nil)
	}
	return user, nil
}

// UserByEmail fetches a user by its unique email
func (r *Repository) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return domain.User{}, translate(err, "get user by email", nil)
	}
	return user, nil
}

// ListPosts returns every post with its author, newest first
func (r *Repository) ListPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at desc").
		Order("id desc").
		Find(&posts).Error
	if err != nil {
		return nil, translate(err, "list posts", nil)
	}
	return posts, nil
}

// PostByID fetches a post with its author and its comments (oldest first) with their authors
func (r *Repository) PostByID(ctx context.Context, id uint) (domain.BlogPost, error) {
	var post domain.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc").Order("id asc")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		return domain.BlogPost{}, translate(err, "get post", nil)
	}
	return post, nil
}

// CreatePost inserts a post; the unique title index makes the check atomic with the insert
func (r *Repository) CreatePost(ctx context.Context, post *domain.BlogPost) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return translate(err, "create post", domain.ErrDuplicateTitle)
	}
	return nil
}

// UpdatePost overwrites the editable fields of a post while holding its row lock
func (r *Repository) UpdatePost(ctx context.Context, id uint, fields domain.PostFields) (domain.BlogPost, error) {
	var post domain.BlogPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the row so a concurrent delete waits for this edit
		if err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).First(&post, id).Error; err != nil {
			return err
		}
		fields.Apply(&post)
		err := tx.Model(&domain.BlogPost{ID: post.ID}).Updates(map[string]any{
			"title":    post.Title,
			"subtitle": post.Subtitle,
			"body":     post.Body,
			"img_url":  post.ImgURL,
		}).Error
		if err != nil {
			return err
		}
		return tx.Take(&post.Author, post.AuthorID).Error
	})
	if err != nil {
		return domain.BlogPost{}, translate(err, "update post", domain.ErrDuplicateTitle)
	}
	return post, nil
}

// DeletePost removes a post and its comments in one transaction
func (r *Repository) DeletePost(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post domain.BlogPost
		if err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).Select("id").First(&post, id).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.BlogPost{}, post.ID).Error
	})
	if err != nil {
		return translate(err, "delete post", nil)
	}
	return nil
}

// CreateComment inserts a comment after share-locking its parent post
func (r *Repository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post domain.BlogPost
		if err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthShare}).Select("id").First(&post, comment.PostID).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(comment).Error
	})
	if err != nil {
		return translate(err, "create comment", nil)
	}
	return nil
}

// CommentsByPost lists the comments of a post, oldest first
func (r *Repository) CommentsByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, translate(err, "list comments", nil)
	}
	return comments, nil
}

// translate maps gorm errors onto domain errors; anything unknown is wrapped as an infrastructure failure
func translate(err error, op string, duplicate error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
