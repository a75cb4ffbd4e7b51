package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/bnema/tenantctl/internal/adapters/adminapi"
	"github.com/bnema/tenantctl/internal/adapters/remote"
	tomlrepo "github.com/bnema/tenantctl/internal/adapters/repo/toml"
	chainstore "github.com/bnema/tenantctl/internal/adapters/secrets/chain"
	filestore "github.com/bnema/tenantctl/internal/adapters/secrets/file"
	passstore "github.com/bnema/tenantctl/internal/adapters/secrets/pass"
	"github.com/bnema/tenantctl/internal/application"
	"github.com/bnema/tenantctl/internal/config"
	"github.com/bnema/tenantctl/internal/logger"
	"github.com/bnema/tenantctl/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg          *config.Config
	log          *zap.Logger
	clock        ports.Clock
	session      *application.SessionController
	instances    *application.InstanceService
	orchestrator *application.RefreshOrchestrator
}

func (a *app) wire(stderr io.Writer) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	cfg, err := config.Load(v, homeDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}

	secrets, err := newSecretStore(cfg)
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	repo, err := tomlrepo.NewInstanceRepository(cfg.Instances.Path)
	if err != nil {
		return fmt.Errorf("wire instance repository: %w", err)
	}

	clock := ports.SystemClock{}
	httpClient := &http.Client{}
	tokens := application.NewTokenStore(secrets)
	guard := application.NewSessionGuard(tokens, clock, log)
	admin := adminapi.Client{
		API:            adminapi.API{BaseURL: cfg.API.BaseURL},
		HTTPClient:     httpClient,
		RequestTimeout: cfg.API.Timeout,
	}
	session := application.NewSessionController(tokens, guard, admin, clock, log)
	session.SetLogoutTimeout(cfg.API.Timeout)

	// The remote client reads the bearer token from the live session, so a
	// logout takes effect on the very next call.
	remoteClient := remote.New(session, httpClient, cfg.API.Timeout, log)

	a.cfg = cfg
	a.log = log
	a.clock = clock
	a.session = session
	a.instances = application.NewInstanceService(repo)
	a.orchestrator = application.NewRefreshOrchestrator(remoteClient, application.OrchestratorConfig{
		Prefix:      cfg.Remote.Prefix,
		Concurrency: cfg.Refresh.Concurrency,
		RateLimit:   cfg.Refresh.RateLimit,
	}, log)

	return nil
}

func (a *app) restoreSession(ctx context.Context) error {
	return a.session.Restore(ctx)
}

func newSecretStore(cfg *config.Config) (ports.SecretStore, error) {
	switch cfg.Token.Backend {
	case config.TokenBackendFile:
		return filestore.NewStore(cfg.Token.Dir), nil
	case config.TokenBackendPass:
		return passstore.NewStore(), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.Token.Dir)
	}
}
