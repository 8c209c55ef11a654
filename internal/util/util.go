package util

import (
	"github.com/berfenger/sen6xgen/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel:           zap.DebugLevel,
		Input:              "-",
		Output:             "-",
		Format:             config.FORMAT_CPP,
		StrictCapabilities: false,
		BuildTimeoutMillis: 5000,
		Port:               8080,
	}
}

func TestLogger(cfg config.Config) *zap.Logger {
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	return zap.Must(logCfg.Build())
}
