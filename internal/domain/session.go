package domain

import "time"

type SessionState string

const (
	SessionUnknown  SessionState = "unknown"
	SessionChecking SessionState = "checking"
	SessionValid    SessionState = "valid"
	SessionInvalid  SessionState = "invalid"
	SessionAbsent   SessionState = "absent"
)

// Authenticated reports whether downstream consumers may treat the state as
// logged in. Invalid and Absent are equivalent for every consumer.
func (s SessionState) Authenticated() bool {
	return s == SessionValid
}

// Claims is the identity carried in a bearer token payload.
type Claims struct {
	Subject   string    `json:"subject"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	IssuedAt  time.Time `json:"issued_at,omitempty"`
}

// Identity returns the most human-readable identifier in the claims.
func (c Claims) Identity() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Subject
}

// Session is a point-in-time copy of the operator session.
type Session struct {
	Token           string       `json:"-"`
	Claims          Claims       `json:"claims"`
	State           SessionState `json:"state"`
	IsAuthenticated bool         `json:"is_authenticated"`
	IsLoading       bool         `json:"is_loading"`
	LastError       string       `json:"last_error,omitempty"`
	CheckedAt       time.Time    `json:"checked_at"`
}
