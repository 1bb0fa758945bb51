package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger
type Logger struct {
	*zap.Logger
}

// Config holds logger configuration
type Config struct {
	Environment string // development, staging, production
	Level       string // debug, info, warn, error
	ServiceName string
}

var global *Logger

// Init initializes the global logger
func Init(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = &Config{Environment: "development", Level: "debug"}
	}

	var zapCfg zap.Config
	if cfg.Environment == "development" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if level, err := zapcore.ParseLevel(cfg.Level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	zapLogger, err := zapCfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return nil, err
	}

	if cfg.ServiceName != "" {
		zapLogger = zapLogger.With(zap.String("service", cfg.ServiceName))
	}

	global = &Logger{Logger: zapLogger}
	return global, nil
}

// Get returns the global logger, initializing a default one if needed
func Get() *Logger {
	if global == nil {
		zapLogger, err := zap.NewProduction()
		if err != nil {
			zapLogger = zap.New(zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(os.Stderr),
				zapcore.InfoLevel,
			))
		}
		global = &Logger{Logger: zapLogger}
	}
	return global
}

// With returns a child logger with the given fields attached
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

// Sync flushes buffered log entries
func Sync() error {
	if global != nil {
		return global.Logger.Sync()
	}
	return nil
}
