package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "postgres", cfg.DB.Driver)
	require.Equal(t, 10*time.Second, cfg.TxTimeout)
	require.Equal(t, "ledger-events", cfg.Redis.Channel)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	body := []byte(`
port: "9090"
db:
  driver: sqlite
  sqlite_path: /tmp/ledger-test.db
tx_timeout: 3s
cors_allowed_origins:
  - https://ops.example.com
redis:
  addr: redis:6379
otel:
  sample_ratio: 0.25
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))
	t.Setenv(ConfigPathEnv, path)
	t.Setenv("PORT", "7070")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("LEDGER_TX_TIMEOUT", "")
	t.Setenv("OTEL_SAMPLER_RATIO", "")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Addr(), "env overrides file")
	require.Equal(t, "sqlite", cfg.StoreConfig().Driver)
	require.Equal(t, "/tmp/ledger-test.db", cfg.StoreConfig().SQLitePath)
	require.Equal(t, 3*time.Second, cfg.TxTimeout)
	require.Equal(t, []string{"https://ops.example.com"}, cfg.AllowedOrigins)
	require.Equal(t, "redis:6379", cfg.BusConfig().Addr)
	require.InDelta(t, 0.25, cfg.TracingConfig().SampleRatio, 1e-9)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("DB_DRIVER", "mysql")
	_, err := LoadConfig(nil)
	require.Error(t, err)
}

func TestLoadConfigBadRatio(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("OTEL_SAMPLER_RATIO", "lots")
	_, err := LoadConfig(nil)
	require.Error(t, err)
}
