package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	err := os.WriteFile(path, []byte(`
http_server:
  run_address: 0.0.0.0:9090
  shutdown_timeout: 10s
rate_limit:
  interval: 10ms
logger:
  level: debug
`), 0o600)
	require.NoError(t, err)

	t.Setenv("DATABASE_URI", "postgres://bank@localhost/bank")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://bank@localhost/bank", cfg.DSN)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTPServer.Address)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 10*time.Millisecond, cfg.RateLimit.Interval)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 5, cfg.AccountNumberAttempts)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
