package domain

import (
	"errors"
	"time"
)

// Session is the server-side record behind an opaque session token. Role is a
// snapshot taken at login time: changing a user's role takes effect on their
// next login, not mid-session.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry time.
// A zero ExpiresAt means the session never expires.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

var ErrRoleMismatch = errors.New("role mismatch")
var ErrAlreadyAuthenticated = errors.New("already logged in")
var ErrNotAuthenticated = errors.New("not logged in")
var ErrForbidden = errors.New("access forbidden")
