package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Equal(t, DefaultBackendURL, cfg.Backend.BaseURL)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, 120, cfg.Admin.IdleTimeout)
}

func TestLoadConfigFileAndEnvOverrides(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "agronova.yml")
	require.NoError(t, os.WriteFile(cfile, []byte("web:\n  port: 9000\nadmin:\n  idle_timeout: 30\n"), 0o644))

	t.Setenv("AGRONOVA_API_BASE", "http://localhost:8000")
	t.Setenv("AGRONOVA_WEB_PORT", "9100")

	cfg := LoadConfig(cfile)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 9100, cfg.Web.Port, "env wins over file")
	assert.Equal(t, 30, cfg.Admin.IdleTimeout)
}

func TestStoragePath(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.System.Workdir = "/tmp/agro"
	assert.Equal(t, filepath.Join("/tmp/agro", "agronova.db"), cfg.StoragePath())
}
