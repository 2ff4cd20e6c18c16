// Package memory keeps users, posts and comments in process memory. It honours
// the same uniqueness, locking and cascade rules as the gorm repository and
// backs DB_DRIVER=memory as well as the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"blog_system/internal/domain"
)

// Repository is an in-memory store guarded by a single mutex
type Repository struct {
	mu       sync.RWMutex
	users    map[uint]domain.User
	posts    map[uint]domain.BlogPost
	comments map[uint]domain.Comment
	lastID   struct{ user, post, comment uint }
	now      func() time.Time
}

// New returns an empty repository
func New() *Repository {
	return &Repository{
		users:    make(map[uint]domain.User),
		posts:    make(map[uint]domain.BlogPost),
		comments: make(map[uint]domain.Comment),
		now:      time.Now,
	}
}

// CreateUser stores a user, rejecting a taken email
func (r *Repository) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.lastID.user++
	user.ID = r.lastID.user
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now()
	}
	stored := *user
	stored.Posts, stored.Comments = nil, nil
	r.users[user.ID] = stored
	return nil
}

// UserByID fetches a user by id
func (r *Repository) UserByID(_ context.Context, id uint) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

// UserByEmail fetches a user by email
func (r *Repository) UserByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

// ListPosts returns every post with its author, newest first
func (r *Repository) ListPosts(_ context.Context) ([]domain.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]domain.BlogPost, 0, len(r.posts))
	for _, p := range r.posts {
		p.Author = r.users[p.AuthorID]
		p.Comments = nil
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

// PostByID fetches a post with its author and comments
func (r *Repository) PostByID(_ context.Context, id uint) (domain.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return domain.BlogPost{}, domain.ErrNotFound
	}
	p.Author = r.users[p.AuthorID]
	p.Comments = r.commentsOf(id)
	return p, nil
}

// CreatePost stores a post, rejecting a taken title or unknown author
func (r *Repository) CreatePost(_ context.Context, post *domain.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.titleTaken(post.Title, 0) {
		return domain.ErrDuplicateTitle
	}
	if _, ok := r.users[post.AuthorID]; !ok {
		return domain.ErrNotFound
	}
	r.lastID.post++
	post.ID = r.lastID.post
	if post.CreatedAt.IsZero() {
		post.CreatedAt = r.now()
	}
	stored := *post
	stored.Author, stored.Comments = domain.User{}, nil
	r.posts[post.ID] = stored
	return nil
}

// UpdatePost overwrites the editable fields of a post
func (r *Repository) UpdatePost(_ context.Context, id uint, fields domain.PostFields) (domain.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return domain.BlogPost{}, domain.ErrNotFound
	}
	if r.titleTaken(fields.Title, id) {
		return domain.BlogPost{}, domain.ErrDuplicateTitle
	}
	fields.Apply(&p)
	r.posts[id] = p
	p.Author = r.users[p.AuthorID]
	return p, nil
}

// DeletePost removes the post and every comment that referenced it
func (r *Repository) DeletePost(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	for cid, c := range r.comments {
		if c.PostID == id {
			delete(r.comments, cid)
		}
	}
	delete(r.posts, id)
	return nil
}

// CreateComment stores a comment on an existing post
func (r *Repository) CreateComment(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[comment.PostID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.users[comment.AuthorID]; !ok {
		return domain.ErrNotFound
	}
	r.lastID.comment++
	comment.ID = r.lastID.comment
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = r.now()
	}
	stored := *comment
	stored.Author = domain.User{}
	r.comments[comment.ID] = stored
	return nil
}

// CommentsByPost lists the comments of a post, oldest first
func (r *Repository) CommentsByPost(_ context.Context, postID uint) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.commentsOf(postID), nil
}

// commentsOf expects r.mu to be held
func (r *Repository) commentsOf(postID uint) []domain.Comment {
	var out []domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			c.Author = r.users[c.AuthorID]
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// titleTaken expects r.mu to be held
func (r *Repository) titleTaken(title string, except uint) bool {
	for id, p := range r.posts {
		if id != except && p.Title == title {
			return true
		}
	}
	return false
}
