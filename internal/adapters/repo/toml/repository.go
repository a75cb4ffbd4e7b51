package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/tenantctl/internal/domain"
	"github.com/bnema/tenantctl/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	instancesFileMode   = 0o600
	instancesDirMode    = 0o700
	instancesConfigDir  = ".tenantctl"
	instancesConfigFile = "instances.toml"
	tempFilePattern     = ".instances-*.toml.tmp"
)

// InstanceRepository stores named tenant instances in a single TOML file.
type InstanceRepository struct {
	instancesPath string
	mu            *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.InstanceRepository = (*InstanceRepository)(nil)

// NewInstanceRepository opens the registry at instancesPath, or at
// ~/.tenantctl/instances.toml when it is empty.
func NewInstanceRepository(instancesPath string) (*InstanceRepository, error) {
	if instancesPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		instancesPath = filepath.Join(homeDir, instancesConfigDir, instancesConfigFile)
	}

	instancesPath, err := normalizeInstancesPath(instancesPath)
	if err != nil {
		return nil, err
	}

	return &InstanceRepository{instancesPath: instancesPath, mu: lockForPath(instancesPath)}, nil
}

func (r *InstanceRepository) Save(ctx context.Context, instance domain.RemoteInstance) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(instance)
	updated := false
	for i := range file.Instances {
		if file.Instances[i].Name == encoded.Name {
			file.Instances[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Instances = append(file.Instances, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *InstanceRepository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Instances[:0]
	removed := false
	for _, entry := range file.Instances {
		if entry.Name == name {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return domain.ErrInstanceNotFound
	}
	file.Instances = kept

	return r.writeSchema(file)
}

func (r *InstanceRepository) GetByName(ctx context.Context, name string) (domain.RemoteInstance, error) {
	if err := ctx.Err(); err != nil {
		return domain.RemoteInstance{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.RemoteInstance{}, err
	}

	for _, entry := range file.Instances {
		if entry.Name == name {
			return fromSchema(entry), nil
		}
	}

	return domain.RemoteInstance{}, domain.ErrInstanceNotFound
}

func (r *InstanceRepository) List(ctx context.Context) ([]domain.RemoteInstance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	instances := make([]domain.RemoteInstance, 0, len(file.Instances))
	for _, entry := range file.Instances {
		instances = append(instances, fromSchema(entry))
	}

	return instances, nil
}

// Path returns the resolved registry file location.
func (r *InstanceRepository) Path() string {
	return r.instancesPath
}

func (r *InstanceRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.instancesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read instances file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode instances file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *InstanceRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.instancesPath), instancesDirMode); err != nil {
		return fmt.Errorf("create instances directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode instances file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.instancesPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp instances file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp instances file: %w", err)
	}
	if err := tempFile.Chmod(instancesFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp instances file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp instances file: %w", err)
	}

	if err := os.Rename(tempName, r.instancesPath); err != nil {
		return fmt.Errorf("replace instances file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizeInstancesPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve instances path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(instance domain.RemoteInstance) instanceSchema {
	return instanceSchema{
		Name:       instance.Name,
		BaseURL:    instance.BaseURL,
		SelfHosted: instance.SelfHosted,
	}
}

func fromSchema(entry instanceSchema) domain.RemoteInstance {
	return domain.RemoteInstance{
		Name:       entry.Name,
		BaseURL:    entry.BaseURL,
		SelfHosted: entry.SelfHosted,
	}
}
