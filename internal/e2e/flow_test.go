package e2e

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bnema/tenantctl/internal/adapters/adminapi"
	"github.com/bnema/tenantctl/internal/adapters/remote"
	filestore "github.com/bnema/tenantctl/internal/adapters/secrets/file"
	"github.com/bnema/tenantctl/internal/application"
	"github.com/bnema/tenantctl/internal/domain"
	"github.com/bnema/tenantctl/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stack struct {
	session      *application.SessionController
	orchestrator *application.RefreshOrchestrator
	instance     domain.RemoteInstance
}

func newStack(t *testing.T, tenant *fakeTenant, secretsDir string, concurrency int) stack {
	t.Helper()

	log := zaptest.NewLogger(t)
	clock := ports.SystemClock{}
	tokens := application.NewTokenStore(filestore.NewStore(secretsDir))
	guard := application.NewSessionGuard(tokens, clock, log)
	admin := adminapi.Client{API: adminapi.API{BaseURL: tenant.server.URL}, HTTPClient: tenant.server.Client(), RequestTimeout: time.Second}
	session := application.NewSessionController(tokens, guard, admin, clock, log)

	caller := remote.New(session, tenant.server.Client(), time.Second, log)
	return stack{
		session:      session,
		orchestrator: application.NewRefreshOrchestrator(caller, application.OrchestratorConfig{Concurrency: concurrency}, log),
		instance:     domain.RemoteInstance{Name: "acme", BaseURL: tenant.server.URL + "/", SelfHosted: true},
	}
}

func TestOperatorFlowAgainstTenant(t *testing.T) {
	tenant := newFakeTenant(t)
	secretsDir := t.TempDir()
	ctx := context.Background()

	s := newStack(t, tenant, secretsDir, 4)
	require.NoError(t, s.session.Restore(ctx))
	require.ErrorIs(t, s.session.RequireAuthenticated(), domain.ErrNotAuthenticated)

	require.NoError(t, s.session.Login(ctx, "ops@example.com", operatorPassword))
	assert.Equal(t, "ops@example.com", s.session.Snapshot().Claims.Identity())

	// A fresh process restores the session from the store without a login call.
	restarted := newStack(t, tenant, secretsDir, 4)
	require.NoError(t, restarted.session.Restore(ctx))
	require.NoError(t, restarted.session.RequireAuthenticated())

	catalog, err := restarted.orchestrator.LoadCatalog(ctx, restarted.instance)
	require.NoError(t, err)
	assert.Len(t, catalog.ToolPrompts, 1)
	assert.Len(t, catalog.Prompts, 6)
	assert.Empty(t, catalog.Agents)
	assert.Len(t, catalog.Workflows, 1)
	assert.Contains(t, catalog.Warnings[domain.CategoryAgent], "agent index corrupted")

	outcomes, err := restarted.orchestrator.RefreshCategory(ctx, restarted.instance, domain.CategoryPrompt)
	require.NoError(t, err)
	report := domain.Summarize(outcomes)
	assert.Equal(t, "5 of 6 prompts refreshed", report.Tallies[0].String())
	assert.ErrorContains(t, report.Err, "p-5 is pinned")

	outcome, err := restarted.orchestrator.RefreshItem(ctx, restarted.instance, domain.NewToolPromptItem("search", "slack"))
	require.NoError(t, err)
	assert.Equal(t, "tool prompt search/slack rebuilt", outcome.Message)

	require.NoError(t, restarted.session.Logout(ctx))
	restarted.session.Wait()
	assert.Equal(t, int32(1), tenant.logouts.Load())

	again := newStack(t, tenant, secretsDir, 4)
	require.NoError(t, again.session.Restore(ctx))
	assert.Equal(t, domain.SessionAbsent, again.session.Snapshot().State)
}

func TestLogoutDuringBatchStopsLaterCalls(t *testing.T) {
	tenant := newFakeTenant(t)
	ctx := context.Background()

	s := newStack(t, tenant, t.TempDir(), 1)
	require.NoError(t, s.session.Login(ctx, "ops@example.com", operatorPassword))

	tenant.setRefreshHook(func(id string) {
		if id == "p-3" {
			assert.NoError(t, s.session.Logout(context.Background()))
		}
	})

	items := make([]domain.RefreshableItem, 0, 6)
	for _, id := range []string{"p-1", "p-2", "p-3", "p-4", "p-6", "w-1"} {
		category := domain.CategoryPrompt
		if id == "w-1" {
			category = domain.CategoryWorkflow
		}
		items = append(items, domain.RefreshableItem{Category: category, Identifier: id})
	}

	outcomes := s.orchestrator.RefreshBatch(ctx, s.instance, items)
	s.session.Wait()

	require.Len(t, outcomes, 6)
	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			succeeded++
			continue
		}
		var authErr *domain.AuthError
		assert.ErrorAs(t, outcome.Err, &authErr, "outcome %s", outcome.Item.Identifier)
	}
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, int32(3), tenant.refreshes.Load())
	assert.Equal(t, int32(1), tenant.logouts.Load())
}

func TestLogoutLetsInFlightCallsFinish(t *testing.T) {
	tenant := newFakeTenant(t)
	ctx := context.Background()

	s := newStack(t, tenant, t.TempDir(), 2)
	require.NoError(t, s.session.Login(ctx, "ops@example.com", operatorPassword))

	arrived := make(chan string, 2)
	release := make(chan struct{})
	tenant.setRefreshHook(func(id string) {
		if id == "p-1" || id == "p-2" {
			arrived <- id
			<-release
		}
	})

	items := make([]domain.RefreshableItem, 0, 5)
	for _, id := range []string{"p-1", "p-2", "p-3", "p-4", "p-6"} {
		items = append(items, domain.RefreshableItem{Category: domain.CategoryPrompt, Identifier: id})
	}

	done := make(chan []domain.RefreshOutcome, 1)
	go func() {
		done <- s.orchestrator.RefreshBatch(ctx, s.instance, items)
	}()

	<-arrived
	<-arrived
	require.NoError(t, s.session.Logout(ctx))
	close(release)

	outcomes := <-done
	s.session.Wait()

	require.Len(t, outcomes, 5)
	for _, outcome := range outcomes[:2] {
		assert.True(t, outcome.Succeeded(), "outcome %s", outcome.Item.Identifier)
	}
	for _, outcome := range outcomes[2:] {
		var authErr *domain.AuthError
		assert.ErrorAs(t, outcome.Err, &authErr, "outcome %s", outcome.Item.Identifier)
	}
	assert.Equal(t, int32(2), tenant.refreshes.Load())
	assert.Equal(t, int32(1), tenant.logouts.Load())
}

func TestLoginRejectedByTenant(t *testing.T) {
	tenant := newFakeTenant(t)
	s := newStack(t, tenant, t.TempDir(), 1)

	err := s.session.Login(context.Background(), "ops@example.com", "wrong")

	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusUnauthorized, remoteErr.StatusCode)
	assert.Empty(t, s.session.Token())
}
