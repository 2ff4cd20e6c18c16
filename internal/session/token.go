package session

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or shape checks
var ErrInvalidToken = errors.New("invalid session token")

// Claims carried by a session token; RegisteredClaims.ID holds the session id
type Claims struct {
	UserID               uint `json:"user_id"` // Custom claim for user ID
	jwt.RegisteredClaims      // Standard JWT claims
}

// Tokens signs and verifies session tokens
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a signer with the given HMAC secret and token lifetime
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// TTL is the lifetime given to new tokens and their session records
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

// Issue creates a token for the session sessionID owned by userID
func (t *Tokens) Issue(sessionID string, userID uint, now time.Time) (string, error) {
	// Set token claims
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,                          // Session the token points at
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)), // Token expires with the session
			IssuedAt:  jwt.NewNumericDate(now),            // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(t.secret)                        // Sign the token with the secret
}

// Parse validates a token string and returns its claims
func (t *Tokens) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return t.secret, nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	// Validate token and extract claims
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
