package logger

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/diffscope/diffscope/internal/config"
)

// ConfigConverter translates config.LogConfig into LoggerConfig
type ConfigConverter struct{}

// NewConfigConverter creates a new config converter
func NewConfigConverter() *ConfigConverter {
	return &ConfigConverter{}
}

// ConvertConfig converts the application log configuration into the internal
// logger configuration, falling back to defaults for unset fields.
func (cc *ConfigConverter) ConvertConfig(cfg config.LogConfig) (LoggerConfig, error) {
	result := DefaultLoggerConfig()

	if cfg.LogLevel != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
		if err != nil {
			return result, err
		}
		result.Level = level
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		result.Format = FormatJSON
	case "", "console", "text":
		result.Format = FormatConsole
	}

	result.EnableConsole = cfg.EnableConsole
	result.EnableFile = cfg.EnableFile
	result.FilePath = cfg.LogFile
	if cfg.MaxLogSizeMB > 0 {
		result.MaxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		result.MaxBackups = cfg.MaxLogBackups
	}

	return result, nil
}
