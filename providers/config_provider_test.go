package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZamarianPatrick/oasis-backend/structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigProvider_MissingFileUsesDefaults(t *testing.T) {
	flags := &structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "config.yml")}

	conf, err := NewConfigProvider(flags)
	require.NoError(t, err)

	assert.Equal(t, AppName, conf.AppName)
	assert.Equal(t, 8080, conf.WebServer.Port)
	assert.Equal(t, "./db.sqlite", conf.Database.Path)
	assert.Equal(t, "./catalog.yml", conf.Catalog.Path)
	assert.Equal(t, "info", conf.Logger.Level)
	assert.True(t, conf.Cache.Enabled)
	assert.False(t, conf.Metrics.Enabled)
}

func TestNewConfigProvider_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	data := `
webServer:
  host: 127.0.0.1
  port: 9090
database:
  path: /tmp/plants.sqlite
logger:
  level: warn
metrics:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", conf.WebServer.Host)
	assert.Equal(t, 9090, conf.WebServer.Port)
	assert.Equal(t, "/tmp/plants.sqlite", conf.Database.Path)
	assert.True(t, conf.Metrics.Enabled)
	assert.True(t, conf.Debug)
	assert.Equal(t, "debug", conf.Logger.Level)
	assert.Equal(t, path, conf.Path)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	t.Setenv("OASIS_DB_PATH", "/var/lib/oasis/db.sqlite")
	t.Setenv("OASIS_PORT", "7000")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "config.yml")})
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/oasis/db.sqlite", conf.Database.Path)
	assert.Equal(t, 7000, conf.WebServer.Port)
}

func TestNewConfigProvider_InvalidLevel(t *testing.T) {
	t.Setenv("OASIS_LOG_LEVEL", "verbose")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "config.yml")})
	assert.Error(t, err)
}
