package models

import "time"

// Login method values recorded on a session, naming the flow that produced it.
const (
	LoginMethodSSO      = "SSO"
	LoginMethodStandard = "STANDARD"
)

// SessionRecord is a cached authenticated session against the target site.
// Records are immutable after creation except for IsActive; a refreshed
// session is always a new record.
type SessionRecord struct {
	SessionID   string    `json:"session_id" bson:"session_id"`
	Cookies     string    `json:"cookies" bson:"cookies"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	LoginMethod string    `json:"login_method" bson:"login_method"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" bson:"expires_at"`
}

// Valid reports whether the record is usable at the given instant.
func (s *SessionRecord) Valid(now time.Time) bool {
	return s.IsActive && s.ExpiresAt.After(now)
}
