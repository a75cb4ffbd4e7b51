package ports

import "context"

// SecretStore persists opaque secrets by key. Get returns
// domain.ErrSecretNotFound when the key has never been written or was deleted,
// and Delete of a missing key is not an error.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
