// Package session wraps the hosted auth platform (Supabase GoTrue) behind a
// small client: session lookup, sign-in/up/out, and change notifications.
package session

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity carried inside a session.
type User struct {
	ID       uuid.UUID      `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata"`
}

// Session is a transient reference to a server-issued authentication. The
// application never persists it; it is re-derived on load and updated through
// change notifications.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"-"`
	User         User      `json:"user"`
}

// Expired reports whether the access token is past its expiry.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// MetadataString reads a string field from the user metadata map.
func (u User) MetadataString(key string) string {
	if u.Metadata == nil {
		return ""
	}
	v, _ := u.Metadata[key].(string)
	return v
}

// ChangeEvent is the kind of auth state change delivered to subscribers.
type ChangeEvent string

const (
	SignedIn  ChangeEvent = "SIGNED_IN"
	SignedOut ChangeEvent = "SIGNED_OUT"
)

// ChangeHandler receives auth state changes. The session is nil for
// SignedOut.
type ChangeHandler func(event ChangeEvent, session *Session)
