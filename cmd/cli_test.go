package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	server  *httptest.Server
	token   string
	logouts atomic.Int32
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	backend := &fakeBackend{token: signedToken(t, "op-1", "ops@example.com", time.Now().Add(time.Hour))}
	authorized := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+backend.token {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = fmt.Fprint(w, `{"message":"bad token"}`)
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = fmt.Fprint(w, `{"message":"invalid credentials"}`)
			return
		}
		_, _ = fmt.Fprintf(w, `{"token":%q}`, backend.token)
	})
	mux.HandleFunc("POST /api/admin/logout", func(w http.ResponseWriter, r *http.Request) {
		backend.logouts.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/v1/cache/tool-prompts", authorized(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `[{"toolName":"search","connectorType":"slack","name":"Slack search"}]`)
	}))
	mux.HandleFunc("GET /api/v1/cache/prompts", authorized(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"data":[{"id":"p-1","name":"Greeting"},{"id":"p-2","name":"Farewell"}]}`)
	}))
	mux.HandleFunc("GET /api/v1/cache/agents", authorized(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprint(w, `{"message":"agents offline"}`)
	}))
	mux.HandleFunc("GET /api/v1/cache/workflows", authorized(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"items":[]}`)
	}))
	mux.HandleFunc("POST /api/v1/cache/refresh/prompt/{id}", authorized(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "p-2" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"message":"prompt p-2 not cached"}`)
			return
		}
		_, _ = fmt.Fprint(w, `{"success":true}`)
	}))
	mux.HandleFunc("POST /api/v1/cache/refresh/tool-prompts/{tool}/{connector}", authorized(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"success":true,"message":"rebuilt %s for %s"}`, r.PathValue("tool"), r.PathValue("connector"))
	}))

	backend.server = httptest.NewServer(mux)
	t.Cleanup(backend.server.Close)
	return backend
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestLoginStoresTokenAndWhoamiReportsIt(t *testing.T) {
	backend := newFakeBackend(t)
	home := t.TempDir()
	t.Setenv("TENANTCTL_API_BASE_URL", backend.server.URL)

	stdout, _, err := executeCLI(t, home, "login", "--email", "ops@example.com", "--password", "hunter2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged in as ops@example.com")

	stored, err := os.ReadFile(filepath.Join(home, ".tenantctl", "secrets", "tenantctl", "session", "bearer_token"))
	require.NoError(t, err)
	assert.Equal(t, backend.token, strings.TrimSpace(string(stored)))

	stdout, _, err = executeCLI(t, home, "whoami", "--json")
	require.NoError(t, err)
	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &status))
	assert.Equal(t, true, status["authenticated"])
	assert.Equal(t, "ops@example.com", status["email"])
	assert.Equal(t, "valid", status["state"])
}

func TestLoginReadsCredentialsFromStdin(t *testing.T) {
	backend := newFakeBackend(t)
	home := t.TempDir()
	t.Setenv("TENANTCTL_API_BASE_URL", backend.server.URL)

	stdout, _, err := executeCLIWithInput(t, home, "ops@example.com\nhunter2\n", "login")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged in as ops@example.com")
}

func TestLoginRejectedLeavesNoSession(t *testing.T) {
	backend := newFakeBackend(t)
	home := t.TempDir()
	t.Setenv("TENANTCTL_API_BASE_URL", backend.server.URL)

	_, _, err := executeCLI(t, home, "login", "--email", "ops@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login rejected")

	stdout, _, err := executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not logged in")
}

func TestProtectedCommandsRequireLogin(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "catalog", "--base-url", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login required")
	assert.Contains(t, err.Error(), "tenantctl login")
}

func TestInstanceRegistryCommands(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "instance", "add", "acme", "--base-url", "https://acme.example")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "instance", "add", "cloud", "--base-url", "https://cloud.example", "--self-hosted=false")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "instance", "add", "acme", "--base-url", "https://other.example")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	stdout, _, err := executeCLI(t, home, "instance", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "instances: 2")
	assert.Contains(t, stdout, "https://acme.example")

	_, _, err = executeCLI(t, home, "instance", "remove", "acme")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "instance", "list", "--json")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "acme")
	assert.Contains(t, stdout, `"name": "cloud"`)
}

func TestInstanceRegistryHonorsConfiguredPath(t *testing.T) {
	home := t.TempDir()
	registry := filepath.Join(t.TempDir(), "fleet.toml")
	t.Setenv("TENANTCTL_INSTANCES_PATH", registry)

	_, _, err := executeCLI(t, home, "instance", "add", "acme", "--base-url", "https://acme.example")
	require.NoError(t, err)

	data, err := os.ReadFile(registry)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://acme.example")
	assert.NoFileExists(t, filepath.Join(home, ".tenantctl", "instances.toml"))
}

func TestCatalogIsolatesFailingCategory(t *testing.T) {
	backend := newFakeBackend(t)
	home := loggedInHome(t, backend)

	_, _, err := executeCLI(t, home, "instance", "add", "acme", "--base-url", backend.server.URL+"/")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "catalog", "--instance", "acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cache catalog: acme")
	assert.Contains(t, stdout, "search/slack")
	assert.Contains(t, stdout, "p-2")
	assert.Contains(t, stdout, "agents offline")

	stdout, _, err = executeCLI(t, home, "catalog", "--instance", "acme", "--search", "greet", "--json")
	require.NoError(t, err)
	var catalog map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &catalog))
	assert.Len(t, catalog["prompts"], 1)
	assert.Len(t, catalog["tool_prompts"], 0)
}

func TestCatalogRefusesManagedInstance(t *testing.T) {
	backend := newFakeBackend(t)
	home := loggedInHome(t, backend)

	_, _, err := executeCLI(t, home, "instance", "add", "cloud", "--base-url", backend.server.URL, "--self-hosted=false")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "catalog", "--instance", "cloud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not self-hosted")
}

func TestRefreshReportsPartialFailure(t *testing.T) {
	backend := newFakeBackend(t)
	home := loggedInHome(t, backend)

	stdout, _, err := executeCLI(t, home, "refresh", "--base-url", backend.server.URL, "--category", "prompts", "--id", "p-1", "--id", "p-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 refreshes failed")
	assert.Contains(t, stdout, "1 of 2 prompts refreshed")
	assert.Contains(t, stdout, "prompt p-2 not cached")
}

func TestRefreshAllJSON(t *testing.T) {
	backend := newFakeBackend(t)
	home := loggedInHome(t, backend)

	stdout, stderr, err := executeCLI(t, home, "refresh", "--base-url", backend.server.URL, "--category", "tool-prompt", "--all", "--json")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "Refreshing")

	var result refreshResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, "rebuilt search for slack", result.Outcomes[0].Message)
	assert.Equal(t, 1, result.Report.Succeeded)
}

func TestRefreshAllFailsWhenCategoryUnavailable(t *testing.T) {
	backend := newFakeBackend(t)
	home := loggedInHome(t, backend)

	_, _, err := executeCLI(t, home, "refresh", "--base-url", backend.server.URL, "--category", "agent", "--all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agents offline")
}

func TestRefreshToolPrompt(t *testing.T) {
	backend := newFakeBackend(t)
	home := loggedInHome(t, backend)

	stdout, _, err := executeCLI(t, home, "refresh", "tool-prompt", "--base-url", backend.server.URL, "--tool", "search", "--connector", "slack")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rebuilt search for slack")

	_, _, err = executeCLI(t, home, "refresh", "tool-prompt", "--base-url", backend.server.URL, "--tool", "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connector type")
}

func TestRefreshValidatesSelection(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "refresh", "--base-url", "http://127.0.0.1:1", "--category", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --all or at least one --id")

	_, _, err = executeCLI(t, home, "refresh", "--base-url", "http://127.0.0.1:1", "--category", "pricing", "--all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestLogoutClearsSessionAndNotifiesBackend(t *testing.T) {
	backend := newFakeBackend(t)
	home := loggedInHome(t, backend)

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out")
	assert.Equal(t, int32(1), backend.logouts.Load())

	_, err = os.Stat(filepath.Join(home, ".tenantctl", "secrets", "tenantctl", "session", "bearer_token"))
	assert.True(t, os.IsNotExist(err))

	_, _, err = executeCLI(t, home, "catalog", "--base-url", backend.server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login required")
}

func loggedInHome(t *testing.T, backend *fakeBackend) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("TENANTCTL_API_BASE_URL", backend.server.URL)
	_, _, err := executeCLI(t, home, "login", "--email", "ops@example.com", "--password", "hunter2")
	require.NoError(t, err)
	return home
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home string, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("TENANTCTL_TOKEN_BACKEND", "file")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func signedToken(t *testing.T, subject, email string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  "admin",
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}
