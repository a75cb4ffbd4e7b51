package application

import (
	"time"

	"github.com/bnema/tenantctl/internal/domain"
)

type InstanceQuery struct {
	Name    string
	BaseURL string
}

// SessionStatus is the printable view of the current session.
type SessionStatus struct {
	State         domain.SessionState `json:"state"`
	Authenticated bool                `json:"authenticated"`
	Subject       string              `json:"subject,omitempty"`
	Email         string              `json:"email,omitempty"`
	Role          string              `json:"role,omitempty"`
	ExpiresAt     *time.Time          `json:"expires_at,omitempty"`
	ExpiresIn     string              `json:"expires_in,omitempty"`
	LastError     string              `json:"last_error,omitempty"`
}

func NewSessionStatus(session domain.Session, now time.Time) SessionStatus {
	status := SessionStatus{
		State:         session.State,
		Authenticated: session.IsAuthenticated,
		LastError:     session.LastError,
	}
	if !session.IsAuthenticated {
		return status
	}

	expiresAt := session.Claims.ExpiresAt
	status.Subject = session.Claims.Subject
	status.Email = session.Claims.Email
	status.Role = session.Claims.Role
	status.ExpiresAt = &expiresAt
	status.ExpiresIn = expiresAt.Sub(now).Truncate(time.Second).String()
	return status
}
