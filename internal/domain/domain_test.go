package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_IsAdmin(t *testing.T) {
	assert.True(t, Identity{ID: 7, Role: RoleAdmin}.IsAdmin())
	assert.False(t, Identity{ID: 1, Role: RoleUser}.IsAdmin())
	assert.False(t, Identity{ID: 1}.IsAdmin())
}

func TestUser_Identity(t *testing.T) {
	u := User{ID: 3, Email: "a@x.com", Name: "A", Role: RoleUser, Password: "digest"}
	assert.Equal(t, Identity{ID: 3, Email: "a@x.com", Name: "A", Role: RoleUser}, u.Identity())
}

func TestPostFields_Validate(t *testing.T) {
	ok := PostFields{Title: "t", Subtitle: "s", Body: "b", ImgURL: "http://img"}
	assert.NoError(t, ok.Validate())

	for name, f := range map[string]PostFields{
		"title":    {Subtitle: "s", Body: "b", ImgURL: "u"},
		"subtitle": {Title: "t", Body: "b", ImgURL: "u"},
		"body":     {Title: "t", Subtitle: "s", Body: "  ", ImgURL: "u"},
		"img":      {Title: "t", Subtitle: "s", Body: "b"},
	} {
		assert.ErrorIs(t, f.Validate(), ErrInvalidInput, name)
	}
}

func TestPostFields_ApplyKeepsAuthorAndDate(t *testing.T) {
	p := BlogPost{ID: 1, AuthorID: 9, Date: "April 05, 2024", Title: "old"}
	PostFields{Title: "new", Subtitle: "s", Body: "b", ImgURL: "u"}.Apply(&p)

	assert.Equal(t, "new", p.Title)
	assert.Equal(t, uint(9), p.AuthorID)
	assert.Equal(t, "April 05, 2024", p.Date)
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(ErrNotFound))
	assert.True(t, IsRecoverable(fmt.Errorf("post 4: %w", ErrNotFound)))
	assert.True(t, IsRecoverable(ErrForbidden))
	assert.False(t, IsRecoverable(errors.New("connection refused")))
	assert.False(t, IsRecoverable(nil))
}
