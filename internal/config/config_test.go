package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10*time.Second, cfg.Polling.Prices)
	assert.Equal(t, time.Minute, cfg.Polling.Category)
	assert.Equal(t, 5*time.Minute, cfg.Polling.News)
	assert.Equal(t, 12*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, 720*time.Hour, cfg.Subscription.PlanPeriod)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yml := []byte(`
server:
  port: 9090
logger:
  level: debug
  format: json
database:
  driver: postgres
  dsn: "host=localhost user=borsa dbname=borsa"
polling:
  prices: 5s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), yml, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Polling.Prices)
	// untouched keys keep their defaults
	assert.Equal(t, time.Minute, cfg.Polling.Category)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}
