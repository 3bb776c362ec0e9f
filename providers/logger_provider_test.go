package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZamarianPatrick/oasis-backend/structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "app", TypeApp.String())
	assert.Equal(t, "store", TypeStore.String())
	assert.Equal(t, "shop", TypeShop.String())
	assert.Equal(t, "http", TypeHTTP.String())
}

func TestNewLogProvider_CreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "debug", Mode: 0644, Dir: dir},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "test message %d", 1)
	logger.Debugf(TypeStore, "store message")
	logger.Warnf(TypeShop, "shop message")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, "oasis.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "test message 1")
	assert.Contains(t, string(data), `"type":"shop"`)
}

func TestNewLogProvider_LevelFilters(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "warn", Mode: 0644, Dir: dir},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Infof(TypeApp, "hidden")
	logger.Errorf(TypeApp, "shown")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, "oasis.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "info", Mode: 0644, Dir: "/nonexistent/directory/path"},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{Logger: structures.LoggerConfig{Level: "loud"}}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
