package ports

import (
	"context"

	"github.com/bnema/tenantctl/internal/domain"
)

type InstanceRepository interface {
	GetByName(ctx context.Context, name string) (domain.RemoteInstance, error)
	List(ctx context.Context) ([]domain.RemoteInstance, error)
	Save(ctx context.Context, instance domain.RemoteInstance) error
	Delete(ctx context.Context, name string) error
}
