package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blog_system/internal/domain"
	"blog_system/internal/session"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest password bcrypt accepts
const maxPasswordBytes = 72

// RegisterInput carries the registration form
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Auth registers users, checks passwords and manages sessions
type Auth struct {
	repo     Repository
	sessions SessionStore
	tokens   *session.Tokens
	admins   map[string]struct{}
	cost     int
	now      func() time.Time
	log      logrus.FieldLogger
}

// NewAuth builds the auth service. Emails listed in adminEmails register with
// the admin role; every other email registers as a regular user.
func NewAuth(repo Repository, sessions SessionStore, tokens *session.Tokens, adminEmails []string, log logrus.FieldLogger) *Auth {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = normalizeEmail(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &Auth{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
		admins:   admins,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		log:      log,
	}
}

// Register creates a user and opens a session for it
func (a *Auth) Register(ctx context.Context, in RegisterInput) (domain.Session, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" || len(in.Password) > maxPasswordBytes {
		return domain.Session{}, domain.ErrInvalidInput
	}

	_, err := a.repo.UserByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.Session{}, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// bcrypt generates a per-password salt and stores it inside the digest
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return domain.Session{}, domain.ErrInvalidInput
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := domain.RoleUser
	if _, ok := a.admins[email]; ok {
		role = domain.RoleAdmin
	}
	user := domain.User{Email: email, Name: name, Password: string(hash), Role: role}
	if err := a.repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")

	return a.open(ctx, user)
}

// Login checks the password against the stored digest and opens a session
func (a *Auth) Login(ctx context.Context, email, password string) (domain.Session, error) {
	user, err := a.repo.UserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Session{}, domain.ErrUnknownEmail
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		a.log.WithField("user_id", user.ID).Warn("Login rejected: bad password")
		return domain.Session{}, domain.ErrBadPassword
	}

	return a.open(ctx, user)
}

// Logout ends the session behind token. Unknown, malformed and already
// revoked tokens are ignored.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := a.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := a.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	a.log.WithField("user_id", claims.UserID).Info("User logged out")
	return nil
}

// CurrentIdentity resolves token to the logged-in identity, or nil when the
// token does not name a live session.
func (a *Auth) CurrentIdentity(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := a.tokens.Parse(token)
	if err != nil {
		a.log.WithError(err).Debug("Ignoring session token")
		return nil, nil
	}

	userID, ok, err := a.sessions.Load(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok || userID != claims.UserID {
		return nil, nil
	}

	user, err := a.repo.UserByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	identity := user.Identity()
	return &identity, nil
}

func (a *Auth) open(ctx context.Context, user domain.User) (domain.Session, error) {
	now := a.now()
	sessionID := uuid.NewString()
	if err := a.sessions.Save(ctx, sessionID, user.ID, a.tokens.TTL()); err != nil {
		return domain.Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	token, err := a.tokens.Issue(sessionID, user.ID, now)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return domain.Session{
		Token:     token,
		Identity:  user.Identity(),
		ExpiresAt: now.Add(a.tokens.TTL()),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
