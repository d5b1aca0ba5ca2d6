package logger

import (
	"sync"

	"tradebook-service/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// InitLogger builds the global logger from the application configuration.
// Only the first call wins; later calls are no-ops.
func InitLogger(appConfig *config.Config) {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}

		if level, err := zapcore.ParseLevel(appConfig.Log.Level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
		if appConfig.Server.Env == "development" {
			cfg.Development = true
		}

		logger, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		instance = logger
	})
}

// GetLogger returns the global logger, building a default production logger
// if InitLogger was never called.
func GetLogger() *zap.Logger {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		logger, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		instance = logger
	})
	return instance
}
