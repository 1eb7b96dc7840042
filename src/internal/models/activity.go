package models

import "time"

// SessionEventMessage is published to the queue on every session lifecycle
// transition the broker performs.
type SessionEventMessage struct {
	SessionID   string    `json:"session_id,omitempty"`
	ServiceName string    `json:"service_name"`
	Action      string    `json:"action"`
	LoginMethod string    `json:"login_method,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Session event action constants
const (
	ActionSessionCreated = "session_created"
	ActionSessionReused  = "session_reused"
	ActionLoginFailed    = "login_failed"
	ActionCleanup        = "cleanup"
)

// Service name constants
const (
	ServiceSessionBroker = "session.broker"
)
