package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ZamarianPatrick/oasis-backend/structures"
	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeStore
	TypeShop
	TypeHTTP
)

func (t TypeEnum) String() string {
	switch t {
	case TypeStore:
		return "store"
	case TypeShop:
		return "shop"
	case TypeHTTP:
		return "http"
	default:
		return "app"
	}
}

type Logger interface {
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Errorf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type logProvider struct {
	log  zerolog.Logger
	file *os.File
}

// NewLogProvider logs to stderr when no logger.dir is configured, otherwise
// to <dir>/oasis.log.
func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("unknown log level %q: %w", conf.Logger.Level, err)
	}

	lp := &logProvider{}

	var out io.Writer
	if conf.Logger.Dir == "" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	} else {
		path := filepath.Join(conf.Logger.Dir, "oasis.log")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
		if err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		}
		lp.file = f
		out = f
	}

	lp.log = zerolog.New(out).Level(level).With().Timestamp().Str("app", AppName).Logger()
	return lp, nil
}

func (l *logProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.log.Debug().Str("type", t.String()).Msgf(format, args...)
}

func (l *logProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.log.Info().Str("type", t.String()).Msgf(format, args...)
}

func (l *logProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.log.Warn().Str("type", t.String()).Msgf(format, args...)
}

func (l *logProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.log.Error().Str("type", t.String()).Msgf(format, args...)
}

func (l *logProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.log.Fatal().Str("type", t.String()).Msgf(format, args...)
}

func (l *logProvider) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

// NopLogger discards everything.
func NopLogger() Logger {
	return &logProvider{log: zerolog.Nop()}
}
