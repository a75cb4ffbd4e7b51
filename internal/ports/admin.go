package ports

import "context"

// AdminAuthenticator exchanges operator credentials for a bearer token on the
// central admin API.
type AdminAuthenticator interface {
	Login(ctx context.Context, email string, password string) (string, error)
	Logout(ctx context.Context, token string) error
}
