package domain

import "errors"

// Recoverable outcomes of the blog operations. Callers decide how to surface
// them; anything else returned by a service is an infrastructure failure.
var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrDuplicateTitle  = errors.New("post title already exists")
	ErrUnknownEmail    = errors.New("email does not exist")
	ErrBadPassword     = errors.New("password incorrect")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("admin access required")
	ErrUnauthenticated = errors.New("login required")
	ErrInvalidInput    = errors.New("invalid input")
)

var recoverable = []error{
	ErrDuplicateEmail,
	ErrDuplicateTitle,
	ErrUnknownEmail,
	ErrBadPassword,
	ErrNotFound,
	ErrForbidden,
	ErrUnauthenticated,
	ErrInvalidInput,
}

// IsRecoverable reports whether err wraps one of the recoverable outcomes
func IsRecoverable(err error) bool {
	for _, target := range recoverable {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
