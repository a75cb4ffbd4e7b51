package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int              `toml:"version"`
	Instances []instanceSchema `toml:"instances"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported instances schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type instanceSchema struct {
	Name       string `toml:"name"`
	BaseURL    string `toml:"base_url"`
	SelfHosted bool   `toml:"self_hosted"`
}
