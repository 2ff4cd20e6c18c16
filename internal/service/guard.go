package service

import "blog_system/internal/domain"

// RequireAdmin is the single authorization rule for post mutations. It must be
// called before any repository access so a refusal leaves no side effect.
func RequireAdmin(identity *domain.Identity) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}
	if !identity.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
