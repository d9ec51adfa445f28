// Package auth provides the identity token service, password hashing, and
// the HTTP gate that resolves a bearer token into a request identity.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"finled/internal/core"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 48 * time.Hour

// ErrInvalidToken covers every verification failure: malformed input, bad
// signature, and elapsed expiry. Callers never learn which one it was.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies signed identity tokens. The signing key
// is process-wide configuration, loaded once at startup and read-only after.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

type identityClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issue mints a signed token embedding the identity and an absolute expiry.
// Claims are trusted until expiry; a user edited or deleted after issuance
// keeps a valid token for the remainder of the window.
func (s *TokenService) Issue(id core.Identity) (string, error) {
	if err := id.Validate(); err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	now := time.Now()
	claims := identityClaims{
		Name:  id.Name,
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity and expiry and returns the embedded
// identity. It never consults the data store.
func (s *TokenService) Verify(tokenString string) (core.Identity, error) {
	var claims identityClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return core.Identity{}, ErrInvalidToken
	}
	return core.Identity{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}
