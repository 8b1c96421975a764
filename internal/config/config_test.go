package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missingred/portfolio/internal/config"
)

func TestLoadLocalDefaults(t *testing.T) {
	t.Setenv("PORTFOLIO_MODE", "local")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.ModeLocal, cfg.Mode)
	assert.Equal(t, "mock", cfg.LLMBackend)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "log", cfg.MailBackend)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "public/cv.pdf", cfg.CVPath)
}

func TestLoadGCPRequiresSecrets(t *testing.T) {
	t.Setenv("PORTFOLIO_MODE", "gcp")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GCP_PROJECT", "")
	t.Setenv("GMAIL_APP_PASSWORD", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Contains(t, err.Error(), "GCP_PROJECT")
	assert.Contains(t, err.Error(), "GMAIL_APP_PASSWORD")
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("PORTFOLIO_MODE", "local")
	t.Setenv("STORAGE_BACKEND", "redis")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORTFOLIO_TEST_DOTENV=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PORTFOLIO_TEST_DOTENV") })

	require.NoError(t, config.LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("PORTFOLIO_TEST_DOTENV"))

	require.NoError(t, config.LoadDotEnv(filepath.Join(dir, "missing.env")))
}
