// File: api/token.go
package api

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ---------------- token storage ----------------

// TokenStore holds the bearer token for one admin session. Every request
// reads it; an auth failure or logout clears it. Implementations must be
// safe for concurrent use because uploads can be in flight alongside other
// requests.
type TokenStore interface {
	Token() string
	SetToken(token string)
	ClearToken()
}

// MemoryTokenStore is a mutex-guarded in-memory TokenStore.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore returns an empty MemoryTokenStore.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Token returns the stored token, or "" when logged out.
func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken stores a new token.
func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// ClearToken forgets the stored token.
func (s *MemoryTokenStore) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// ---------------- token inspection ----------------

// TokenExpired reports whether the token is a JWT whose exp claim has
// passed. Tokens that are not JWTs, or carry no exp claim, are treated as
// live; the API remains the authority and will reject them if stale.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
