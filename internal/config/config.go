package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	FORMAT_CPP  = "cpp"
	FORMAT_JSON = "json"
	FORMAT_YAML = "yaml"
)

type Config struct {
	LogLevel           zapcore.Level
	Input              string `mapstructure:"input"`
	Output             string `mapstructure:"output"`
	Format             string `mapstructure:"format"`
	StrictCapabilities bool   `mapstructure:"strict_capabilities"`
	BuildTimeoutMillis uint32 `mapstructure:"build_timeout_millis"`
	Port               uint   `mapstructure:"port"`
	HttpLog            bool   `mapstructure:"http_log"`
}

func CheckFormat(format string) (string, error) {
	lowerFormat := strings.ToLower(strings.TrimSpace(format))
	switch lowerFormat {
	case FORMAT_CPP, FORMAT_JSON, FORMAT_YAML:
		return lowerFormat, nil
	}
	return "", errors.New("invalid output format. must be one of cpp, json, yaml")
}

var pathRegexp = regexp.MustCompile(`^[^\x00]+$`)

// CheckPath validates an input or output path. "-" stands for stdin or stdout.
func CheckPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "-", nil
	}
	if !pathRegexp.MatchString(trimmed) {
		return "", errors.New("invalid path")
	}
	return trimmed, nil
}
