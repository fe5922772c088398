package logger

import "github.com/rs/zerolog"

// LogFormat identifies the output encoding of a logger.
type LogFormat string

const (
	// FormatConsole renders human-readable console output.
	FormatConsole LogFormat = "console"
	// FormatJSON renders structured JSON output.
	FormatJSON LogFormat = "json"
)

// LoggerConfig holds configuration for logger setup
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
}

// DefaultLoggerConfig returns a console-only info-level configuration
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:         zerolog.InfoLevel,
		Format:        FormatConsole,
		EnableConsole: true,
		MaxSizeMB:     10,
		MaxBackups:    3,
	}
}
