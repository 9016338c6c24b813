package logging

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// ParseLevel maps a LOG_LEVEL value to a LogLevel. Unknown values are INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LogLevelError
	case "WARN", "WARNING":
		return LogLevelWarn
	case "DEBUG":
		return LogLevelDebug
	case "TRACE":
		return LogLevelTrace
	default:
		return LogLevelInfo
	}
}

// zapLevel folds TRACE into zap's debug level.
func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogLevelError:
		return zapcore.ErrorLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelDebug, LogLevelTrace:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// Options configure the process logger.
type Options struct {
	Level  LogLevel
	Format string // "console" or "json"
}

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// New builds a zap logger for the given options.
func New(opts Options) (*zap.Logger, error) {
	var config zap.Config
	if opts.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(opts.Level.zapLevel())
	config.DisableStacktrace = opts.Level < LogLevelTrace
	return config.Build()
}

// Init builds the process logger and installs it as the default.
func Init(opts Options) (*zap.Logger, error) {
	logger, err := New(opts)
	if err != nil {
		return nil, err
	}
	SetDefault(logger)
	return logger, nil
}

// SetDefault replaces the logger returned by L and Named.
func SetDefault(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mu.Lock()
	global = logger
	mu.Unlock()
}

// L returns the process logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Named returns a component logger, e.g. Named("researcher").
func Named(component string) *zap.Logger {
	return L().Named(component)
}
