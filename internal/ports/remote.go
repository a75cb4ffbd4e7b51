package ports

import "context"

type RemoteRequest struct {
	Method  string
	BaseURL string
	Path    string
	Body    any
}

type RemoteResponse struct {
	StatusCode int
	Body       []byte
}

// RemoteCaller performs authorized calls against a self-hosted instance.
// Non-2xx responses surface as *domain.RemoteError and unreachable hosts as
// *domain.TransportError.
type RemoteCaller interface {
	Call(ctx context.Context, req RemoteRequest) (RemoteResponse, error)
}

// TokenSource yields the bearer token to attach to remote calls, or "" when
// no valid session exists.
type TokenSource interface {
	Token() string
}
