package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSecretNotFound        = errors.New("secret not found")
	ErrInstanceNotFound      = errors.New("instance not found")
	ErrInstanceNotSelfHosted = errors.New("instance is not self-hosted")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrLoginInProgress       = errors.New("login already in progress")
	ErrTokenExpired          = errors.New("token has expired")
)

// AuthError reports missing or rejected credentials, including a missing
// session token before an authorized call.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "auth: " + e.Reason
	}
	return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// DecodeError reports a token whose payload segment cannot be read as claims.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode token: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError reports incomplete identifying data supplied by the caller.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// RemoteError reports a reachable remote API that answered with a failure,
// either at the HTTP level or in its application payload.
type RemoteError struct {
	StatusCode int
	StatusText string
	Detail     string
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("remote error: %d %s", e.StatusCode, e.StatusText)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// TransportError reports a remote API that could not be reached at all.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
