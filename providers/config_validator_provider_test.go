package providers

import (
	"testing"

	"github.com/ZamarianPatrick/oasis-backend/structures"
	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: structures.Database{Path: "/tmp/oasis.sqlite"},
		Catalog:  structures.CatalogConfig{Path: "/tmp/catalog.yml"},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
		},
		Cache: structures.CacheConfig{Enabled: true, Size: 1},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_EmptyDatabasePath(t *testing.T) {
	c := validConfig()
	c.Database.Path = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_EnabledCacheNeedsSize(t *testing.T) {
	c := validConfig()
	c.Cache.Size = 0
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Cache.Enabled = false
	assert.NoError(t, NewCnfValidator(c).Validate())
}
