package domain

import "time"

// Session is the server-side record proving a prior successful login.
// The client only ever holds a signed token referencing the session id.
type Session struct {
	ID        string
	UserID    string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at t.
func (s Session) Expired(t time.Time) bool {
	return !s.ExpiresAt.After(t)
}
