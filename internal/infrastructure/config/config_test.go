package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfyzer/nsgifts-go/internal/infrastructure/config"
)

func TestSetDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	assert.Equal(t, "https://api.ns.gifts", cfg.Client.BaseURL)
	assert.Equal(t, 3, cfg.Client.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Client.Cooldown)
	assert.Equal(t, 5*time.Minute, cfg.Client.TokenRefreshBuffer)
	assert.Equal(t, 10, cfg.Client.RateLimit.Requests)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "nsgifts.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &config.Config{}
	cfg.Client.BaseURL = "http://localhost:8080"
	cfg.Client.MaxRetries = 5
	config.SetDefaults(cfg)

	assert.Equal(t, "http://localhost:8080", cfg.Client.BaseURL)
	assert.Equal(t, 5, cfg.Client.MaxRetries)
}

func TestValidateConfig_RejectsBadValues(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Type = "mongodb"

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Type")
}

func TestValidateConfig_AcceptsDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
client:
  base_url: http://localhost:9999
  max_retries: 7
  timeout: 10s
database:
  type: sqlite
  path: ":memory:"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.Client.BaseURL)
	assert.Equal(t, 7, cfg.Client.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.Client.Timeout)
	// Unset fields fall back to defaults
	assert.Equal(t, 5*time.Minute, cfg.Client.Cooldown)
}

func TestLoadConfig_CredentialEnvOverrides(t *testing.T) {
	t.Setenv("NSGIFTS_EMAIL", "env@example.com")
	t.Setenv("NSGIFTS_PASSWORD", "env-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client:\n  email: file@example.com\n"), 0o600))

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "env@example.com", cfg.Client.Email)
	assert.Equal(t, "env-secret", cfg.Client.Password)
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	cfg := config.LoadConfigOrDefault(filepath.Join(t.TempDir(), "nope", "config.yaml"))

	require.NotNil(t, cfg)
	assert.Equal(t, "https://api.ns.gifts", cfg.Client.BaseURL)
}
