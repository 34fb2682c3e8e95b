package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	require.Equal(t, "localhost:8080", cfg.GetServerAddress())
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadServerConfigFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

game {
  seed          = 42
  salon_seconds = 180
}
`), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, int64(42), cfg.Game.Seed)
	require.Equal(t, 180, cfg.Game.SalonSeconds)
	require.NoError(t, cfg.Validate())
}

func TestLoadServerConfigRejectsBadHCL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`server {`), 0o644))

	_, err := LoadServerConfig(path)
	require.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	cfg := DefaultServerConfig()
	cfg.Server.Port = -1
	require.Error(t, cfg.Validate())

	cfg = DefaultServerConfig()
	cfg.Game.SalonSeconds = -5
	require.Error(t, cfg.Validate())

	cfg = DefaultServerConfig()
	cfg.Server.StaticDir = filepath.Join(t.TempDir(), "missing")
	require.Error(t, cfg.Validate())
}
