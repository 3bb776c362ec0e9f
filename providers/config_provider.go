package providers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZamarianPatrick/oasis-backend/structures"
	"github.com/spf13/viper"
)

const AppName = "Oasis"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("database.path", "./db.sqlite")
	v.SetDefault("catalog.path", "./catalog.yml")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 1)
	v.SetDefault("metrics.enabled", false)
}

// NewConfigProvider reads the yaml config at flags.ConfigPath. A missing file
// is not an error, the defaults and OASIS_* environment variables apply.
func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "OASIS_LOG_LEVEL")
	v.BindEnv("database.path", "OASIS_DB_PATH")
	v.BindEnv("catalog.path", "OASIS_CATALOG_PATH")
	v.BindEnv("webServer.port", "OASIS_PORT")
	v.BindEnv("metrics.enabled", "OASIS_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config %s: %w", flags.ConfigPath, err)
		}
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode
	if conf.Debug {
		conf.Logger.Level = "debug"
	}

	return &conf, nil
}
