package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tenantctl/internal/domain"
	"github.com/bnema/tenantctl/internal/ports"
)

// SessionTokenKey is the fixed secret-store key holding the operator bearer token.
const SessionTokenKey = "tenantctl/session/bearer_token"

// TokenStore is a plain key-value boundary around the session token. It does
// not inspect what it stores.
type TokenStore struct {
	secrets ports.SecretStore
}

func NewTokenStore(secrets ports.SecretStore) *TokenStore {
	return &TokenStore{secrets: secrets}
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if err := s.secrets.Put(ctx, SessionTokenKey, token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	return nil
}

// Read returns the stored token. A missing token is reported with ok=false and
// a nil error.
func (s *TokenStore) Read(ctx context.Context) (string, bool, error) {
	token, err := s.secrets.Get(ctx, SessionTokenKey)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read session token: %w", err)
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.secrets.Delete(ctx, SessionTokenKey); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}
