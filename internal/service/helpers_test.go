package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"blog_system/internal/db/memory"
	"blog_system/internal/domain"
	"blog_system/internal/session"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var errStorageDown = errors.New("storage unavailable")

// spyRepo counts writes that reach the repository
type spyRepo struct {
	*memory.Repository
	mu        sync.Mutex
	writes    int
	afterRead func() // runs once after the next PostByID read
}

func newSpyRepo() *spyRepo {
	return &spyRepo{Repository: memory.New()}
}

func (s *spyRepo) write() {
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
}

func (s *spyRepo) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *spyRepo) PostByID(ctx context.Context, id uint) (domain.BlogPost, error) {
	post, err := s.Repository.PostByID(ctx, id)
	s.mu.Lock()
	hook := s.afterRead
	s.afterRead = nil
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return post, err
}

func (s *spyRepo) CreateUser(ctx context.Context, u *domain.User) error {
	s.write()
	return s.Repository.CreateUser(ctx, u)
}

func (s *spyRepo) CreatePost(ctx context.Context, p *domain.BlogPost) error {
	s.write()
	return s.Repository.CreatePost(ctx, p)
}

func (s *spyRepo) UpdatePost(ctx context.Context, id uint, f domain.PostFields) (domain.BlogPost, error) {
	s.write()
	return s.Repository.UpdatePost(ctx, id, f)
}

func (s *spyRepo) DeletePost(ctx context.Context, id uint) error {
	s.write()
	return s.Repository.DeletePost(ctx, id)
}

func (s *spyRepo) CreateComment(ctx context.Context, c *domain.Comment) error {
	s.write()
	return s.Repository.CreateComment(ctx, c)
}

// brokenRepo fails every call it overrides; the rest are never reached in tests
type brokenRepo struct {
	Repository
}

func (brokenRepo) UserByEmail(context.Context, string) (domain.User, error) {
	return domain.User{}, errStorageDown
}

func (brokenRepo) ListPosts(context.Context) ([]domain.BlogPost, error) {
	return nil, errStorageDown
}

func (brokenRepo) PostByID(context.Context, uint) (domain.BlogPost, error) {
	return domain.BlogPost{}, errStorageDown
}

// brokenSessions fails to save
type brokenSessions struct {
	SessionStore
}

func (brokenSessions) Save(context.Context, string, uint, time.Duration) error {
	return errStorageDown
}

// mapCache round-trips values through JSON like the Redis cache does
type mapCache struct {
	mu    sync.Mutex
	items map[string][]byte
	hits  int
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = b
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *mapCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func newTestAuth(repo Repository, sessions SessionStore, admins ...string) *Auth {
	log, _ := test.NewNullLogger()
	a := NewAuth(repo, sessions, session.NewTokens("test-secret", time.Hour), admins, log)
	a.cost = bcrypt.MinCost
	return a
}

// seedIdentity inserts a user straight into the repository
func seedIdentity(t *testing.T, repo Repository, email, role string) *domain.Identity {
	t.Helper()
	u := domain.User{Email: email, Name: email, Password: "digest", Role: role}
	require.NoError(t, repo.CreateUser(context.Background(), &u))
	id := u.Identity()
	return &id
}

func validFields(title string) domain.PostFields {
	return domain.PostFields{Title: title, Subtitle: "sub", Body: "<p>body</p>", ImgURL: "https://img.example/1.jpg"}
}
