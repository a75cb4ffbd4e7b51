package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "TENANTCTL"
	DirName        = ".tenantctl"
	configFileName = "config"
)

const (
	TokenBackendChain = "chain"
	TokenBackendFile  = "file"
	TokenBackendPass  = "pass"
)

type Config struct {
	API struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`

	Remote struct {
		Prefix string `mapstructure:"prefix"`
	} `mapstructure:"remote"`

	Refresh struct {
		Concurrency int     `mapstructure:"concurrency"`
		RateLimit   float64 `mapstructure:"rate_limit"`
	} `mapstructure:"refresh"`

	Token struct {
		Backend string `mapstructure:"backend"`
		Dir     string `mapstructure:"dir"`
	} `mapstructure:"token"`

	Instances struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"instances"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// Load fills v with defaults, environment overrides and the optional
// ~/.tenantctl/config.toml, then decodes and validates the result.
// v keeps the merged settings so adapters can read their own keys from it.
func Load(v *viper.Viper, homeDir string) (*Config, error) {
	baseDir := filepath.Join(homeDir, DirName)

	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("remote.prefix", "/api/v1/cache")
	v.SetDefault("refresh.concurrency", 8)
	v.SetDefault("refresh.rate_limit", 0)
	v.SetDefault("token.backend", TokenBackendChain)
	v.SetDefault("token.dir", filepath.Join(baseDir, "secrets"))
	v.SetDefault("instances.path", filepath.Join(baseDir, "instances.toml"))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(baseDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) Validate() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("invalid api.base_url %q: expected an http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid api.timeout %s: must be positive", c.API.Timeout)
	}
	if c.Refresh.Concurrency <= 0 {
		return fmt.Errorf("invalid refresh.concurrency %d: must be positive", c.Refresh.Concurrency)
	}
	if c.Refresh.RateLimit < 0 {
		return fmt.Errorf("invalid refresh.rate_limit %v: must not be negative", c.Refresh.RateLimit)
	}

	switch c.Token.Backend {
	case TokenBackendChain, TokenBackendFile, TokenBackendPass:
	default:
		return fmt.Errorf("invalid token.backend %q: expected chain, file or pass", c.Token.Backend)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log.format %q: expected console or json", c.Log.Format)
	}

	return nil
}
