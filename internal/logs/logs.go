// Package logs holds the zap logger used by the storage layer and the CLI.
//
// The codec packages never log. The logger is a no-op until SetLogger is
// called, so library users see no output unless they ask for it.
package logs

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// EnvMode selects the logger built by NewLogger: "test" or "development"
	// yields a development logger, anything else a production one.
	EnvMode = "BTS_ENV"

	FieldComponent = "component"
	FieldPath      = "path"
	FieldSize      = "size"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// NewLogger builds a logger according to the BTS_ENV environment variable.
func NewLogger() (*zap.Logger, error) {
	option := zap.AddCaller()
	switch os.Getenv(EnvMode) {
	case "test", "development":
		return zap.NewDevelopment(option)
	default:
		return zap.NewProduction(option)
	}
}

// NewLoggerAt builds a production logger writing to stderr at the given
// level name ("debug", "info", "warn", "error").
func NewLoggerAt(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if os.Getenv(EnvMode) == "development" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build(zap.AddCaller())
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger replaces the logger. A nil logger restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Named returns the current logger tagged with a component field.
func Named(component string) *zap.Logger {
	return Logger().With(zap.String(FieldComponent, component))
}
