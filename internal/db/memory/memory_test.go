package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"blog_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, r *Repository, email string) domain.User {
	t.Helper()
	u := domain.User{Email: email, Name: email, Password: "digest", Role: domain.RoleUser}
	require.NoError(t, r.CreateUser(context.Background(), &u))
	return u
}

func seedPost(t *testing.T, r *Repository, author uint, title string, at time.Time) domain.BlogPost {
	t.Helper()
	p := domain.BlogPost{AuthorID: author, Title: title, Subtitle: "s", Body: "b", ImgURL: "u", Date: at.Format(domain.DateLayout), CreatedAt: at}
	require.NoError(t, r.CreatePost(context.Background(), &p))
	return p
}

func TestRepository_UniqueEmail(t *testing.T) {
	r := New()
	seedUser(t, r, "a@x.com")

	err := r.CreateUser(context.Background(), &domain.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRepository_UniqueEmailUnderConcurrency(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.CreateUser(context.Background(), &domain.User{Email: "race@x.com"})
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, created)
}

func TestRepository_LookupsReturnNotFound(t *testing.T) {
	r := New()
	ctx := context.Background()

	_, err := r.UserByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.UserByEmail(ctx, "none@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.PostByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.UpdatePost(ctx, 1, domain.PostFields{Title: "t"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.DeletePost(ctx, 1), domain.ErrNotFound)
}

func TestRepository_ListPostsNewestFirst(t *testing.T) {
	r := New()
	u := seedUser(t, r, "admin@x.com")
	base := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	seedPost(t, r, u.ID, "old", base)
	seedPost(t, r, u.ID, "new", base.Add(time.Hour))
	seedPost(t, r, u.ID, "tie", base.Add(time.Hour))

	posts, err := r.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"tie", "new", "old"}, []string{posts[0].Title, posts[1].Title, posts[2].Title})
	assert.Equal(t, "admin@x.com", posts[0].Author.Email)
}

func TestRepository_UpdatePostTitleConflict(t *testing.T) {
	r := New()
	u := seedUser(t, r, "admin@x.com")
	now := time.Now()
	seedPost(t, r, u.ID, "first", now)
	second := seedPost(t, r, u.ID, "second", now)

	_, err := r.UpdatePost(context.Background(), second.ID, domain.PostFields{Title: "first", Subtitle: "s", Body: "b", ImgURL: "u"})
	assert.ErrorIs(t, err, domain.ErrDuplicateTitle)

	// Keeping its own title is not a conflict
	updated, err := r.UpdatePost(context.Background(), second.ID, domain.PostFields{Title: "second", Subtitle: "new", Body: "b", ImgURL: "u"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Subtitle)
}

func TestRepository_DeletePostCascadesComments(t *testing.T) {
	r := New()
	ctx := context.Background()
	u := seedUser(t, r, "admin@x.com")
	keep := seedPost(t, r, u.ID, "keep", time.Now())
	drop := seedPost(t, r, u.ID, "drop", time.Now())
	require.NoError(t, r.CreateComment(ctx, &domain.Comment{PostID: drop.ID, AuthorID: u.ID, Text: "gone"}))
	require.NoError(t, r.CreateComment(ctx, &domain.Comment{PostID: keep.ID, AuthorID: u.ID, Text: "stays"}))

	require.NoError(t, r.DeletePost(ctx, drop.ID))

	dropped, err := r.CommentsByPost(ctx, drop.ID)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	kept, err := r.CommentsByPost(ctx, keep.ID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "stays", kept[0].Text)
}

func TestRepository_CreateCommentNeedsPost(t *testing.T) {
	r := New()
	u := seedUser(t, r, "a@x.com")

	err := r.CreateComment(context.Background(), &domain.Comment{PostID: 99, AuthorID: u.ID, Text: "hi"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_PostByIDIncludesComments(t *testing.T) {
	r := New()
	ctx := context.Background()
	admin := seedUser(t, r, "admin@x.com")
	reader := seedUser(t, r, "reader@x.com")
	p := seedPost(t, r, admin.ID, "post", time.Now())
	require.NoError(t, r.CreateComment(ctx, &domain.Comment{PostID: p.ID, AuthorID: reader.ID, Text: "first"}))
	require.NoError(t, r.CreateComment(ctx, &domain.Comment{PostID: p.ID, AuthorID: admin.ID, Text: "second"}))

	got, err := r.PostByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@x.com", got.Author.Email)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "reader@x.com", got.Comments[0].Author.Email)
	assert.Equal(t, "second", got.Comments[1].Text)
}
