package domain

import "time"

// SecurityEvent is the category of a security log entry.
type SecurityEvent string

const (
	EventLogin         SecurityEvent = "Login"
	EventDataAccess    SecurityEvent = "Data Access"
	EventFailedAttempt SecurityEvent = "Failed Attempt"
)

// IsFailure reports whether the event records a rejected attempt.
func (e SecurityEvent) IsFailure() bool {
	return e == EventFailedAttempt
}

// SecurityLog is an append-only audit record kept by the backend.
type SecurityLog struct {
	ID          int           `json:"log_id"`
	EventType   SecurityEvent `json:"event_type"`
	User        *int          `json:"user"`
	Username    string        `json:"username,omitempty"`
	IPAddress   string        `json:"ip_address,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	Description string        `json:"description,omitempty"`
}
