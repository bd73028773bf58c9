package e2e

import (
	"bytes"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/mockapi"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := mockapi.New()
	srv.AddUser("aria", "Secret123")
	require.NoError(t, srv.Seed("spell", domain.Spell{ID: "s-1", Index: "light", Name: "Light"}))
	api := httptest.NewServer(srv)
	t.Cleanup(api.Close)

	home := t.TempDir()
	binaryPath := buildBinary(t)
	env := []string{"HOME=" + home, "CAMP_API_BASE_URL=" + api.URL}

	_, stderr, err := runCamp(t, binaryPath, env, "login", "--username", "aria", "--password", "Secret123")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runCamp(t, binaryPath, env, "campaign", "create", "--name", "Lost Mine")
	require.NoError(t, err, "stderr: %s", stderr)
	campaignID := strings.TrimSpace(stdout)
	require.NotEmpty(t, campaignID)

	stdout, stderr, err = runCamp(t, binaryPath, env, "sync", "--quiet")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "spells: 1, campaigns: 1")

	stdout, stderr, err = runCamp(t, binaryPath, env, "campaign", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Lost Mine ("+campaignID+")")

	_, stderr, err = runCamp(t, binaryPath, env, "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	_, _, err = runCamp(t, binaryPath, env, "campaign", "list")
	require.Error(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "camp-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/camp")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build camp binary: %s", string(output))
	return binaryPath
}

func runCamp(t *testing.T, binaryPath string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), env...)
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
