package service

import (
	"testing"

	"blog_system/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRequireAdmin(t *testing.T) {
	assert.ErrorIs(t, RequireAdmin(nil), domain.ErrUnauthenticated)
	assert.ErrorIs(t, RequireAdmin(&domain.Identity{ID: 1, Role: domain.RoleUser}), domain.ErrForbidden)
	assert.NoError(t, RequireAdmin(&domain.Identity{ID: 2, Role: domain.RoleAdmin}))
}
