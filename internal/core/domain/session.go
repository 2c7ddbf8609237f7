package domain

import (
	"errors"
	"time"
)

// ErrUnauthenticated covers absent, invalid, and expired session tokens.
// The three cases are deliberately indistinguishable to callers.
var ErrUnauthenticated = errors.New("unauthenticated")

// Session binds an opaque bearer token to a user identity until ExpiresAt.
// The token is an unguessable capability, not a structured credential.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer usable at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
