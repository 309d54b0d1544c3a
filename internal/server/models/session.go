package models

import "time"

// Session is server-side proof of a prior successful authentication,
// referenced by the opaque token the client holds in a cookie.
//
// UserID is a weak reference: the user row may be deleted while the session
// still exists, in which case the session is treated as unauthenticated on
// next use. IsAdmin is a snapshot taken at login time and may go stale; it
// is a UX hint only, never the authorization source of truth.
type Session struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	IsAdmin   bool      `db:"is_admin"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given
// instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
