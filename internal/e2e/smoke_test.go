package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	tenant := newFakeTenant(t)
	home := t.TempDir()
	binaryPath := buildBinary(t)
	env := []string{
		"TENANTCTL_API_BASE_URL=" + tenant.server.URL,
		"TENANTCTL_TOKEN_BACKEND=file",
	}

	stdout, stderr, err := runTenantctl(t, binaryPath, home, env, "login", "--email", "ops@example.com", "--password", operatorPassword)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Logged in as ops@example.com")

	_, stderr, err = runTenantctl(t, binaryPath, home, env, "instance", "add", "acme", "--base-url", tenant.server.URL)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runTenantctl(t, binaryPath, home, env, "catalog", "--instance", "acme", "--search", "nightly")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "w-1")
	assert.Contains(t, stdout, "agent index corrupted")

	stdout, stderr, err = runTenantctl(t, binaryPath, home, env, "refresh", "--instance", "acme", "--category", "workflow", "--id", "w-1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "1 of 1 workflows refreshed")

	_, stderr, err = runTenantctl(t, binaryPath, home, env, "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	_, _, err = runTenantctl(t, binaryPath, home, env, "catalog", "--instance", "acme")
	require.Error(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "tenantctl-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tenantctl")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build tenantctl binary: %s", string(output))
	return binaryPath
}

func runTenantctl(t *testing.T, binaryPath, home string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(append(os.Environ(), "HOME="+home), env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
