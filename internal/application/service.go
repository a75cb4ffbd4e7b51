package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/bnema/tenantctl/internal/domain"
	"github.com/bnema/tenantctl/internal/ports"
)

var ErrInstanceExists = errors.New("instance already exists")

// InstanceService manages the local registry of named tenant instances.
type InstanceService struct {
	repo ports.InstanceRepository
}

func NewInstanceService(repo ports.InstanceRepository) *InstanceService {
	return &InstanceService{repo: repo}
}

func (s *InstanceService) Add(ctx context.Context, cmd AddInstanceCommand) (domain.RemoteInstance, error) {
	instance := domain.RemoteInstance{
		Name:       strings.TrimSpace(cmd.Name),
		BaseURL:    strings.TrimSpace(cmd.BaseURL),
		SelfHosted: cmd.SelfHosted,
	}
	if err := instance.Validate(); err != nil {
		return domain.RemoteInstance{}, err
	}

	if !cmd.Replace {
		_, err := s.repo.GetByName(ctx, instance.Name)
		if err == nil {
			return domain.RemoteInstance{}, fmt.Errorf("add instance %q: %w", instance.Name, ErrInstanceExists)
		}
		if !errors.Is(err, domain.ErrInstanceNotFound) {
			return domain.RemoteInstance{}, fmt.Errorf("get instance by name: %w", err)
		}
	}

	if err := s.repo.Save(ctx, instance); err != nil {
		return domain.RemoteInstance{}, fmt.Errorf("save instance: %w", err)
	}
	return instance, nil
}

func (s *InstanceService) Remove(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if _, err := s.repo.GetByName(ctx, name); err != nil {
		return fmt.Errorf("get instance by name: %w", err)
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete instance: %w", err)
	}
	return nil
}

func (s *InstanceService) Get(ctx context.Context, name string) (domain.RemoteInstance, error) {
	instance, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.RemoteInstance{}, fmt.Errorf("get instance by name: %w", err)
	}
	return instance, nil
}

func (s *InstanceService) List(ctx context.Context) ([]domain.RemoteInstance, error) {
	instances, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}

	sort.Slice(instances, func(i, j int) bool {
		return instances[i].Name < instances[j].Name
	})
	return instances, nil
}

// Resolve returns the instance a command should target. An explicit base URL
// bypasses the registry and is treated as self-hosted.
func (s *InstanceService) Resolve(ctx context.Context, query InstanceQuery) (domain.RemoteInstance, error) {
	if baseURL := strings.TrimSpace(query.BaseURL); baseURL != "" {
		instance := domain.RemoteInstance{Name: adHocName(baseURL), BaseURL: baseURL, SelfHosted: true}
		if err := instance.Validate(); err != nil {
			return domain.RemoteInstance{}, err
		}
		return instance, nil
	}

	if strings.TrimSpace(query.Name) == "" {
		return domain.RemoteInstance{}, &domain.ValidationError{Field: "instance", Reason: "an instance name or base url is required"}
	}

	instance, err := s.Get(ctx, query.Name)
	if err != nil {
		return domain.RemoteInstance{}, err
	}
	if !instance.Refreshable() {
		return domain.RemoteInstance{}, fmt.Errorf("instance %q: %w", instance.Name, domain.ErrInstanceNotSelfHosted)
	}
	return instance, nil
}

func adHocName(baseURL string) string {
	if parsed, err := url.Parse(baseURL); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return baseURL
}
