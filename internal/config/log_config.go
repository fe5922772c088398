package config

// LogConfig defines configuration for logging
type LogConfig struct {
	LogLevel       string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"loglevel"`
	LogFormat      string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"logformat"`
	EnableConsole  bool   `json:"enable_console,omitempty" yaml:"enable_console,omitempty"`
	EnableFile     bool   `json:"enable_file,omitempty" yaml:"enable_file,omitempty"`
	LogFile        string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	MaxLogSizeMB   int    `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty" validate:"min=0"`
	MaxLogBackups  int    `json:"max_log_backups,omitempty" yaml:"max_log_backups,omitempty" validate:"min=0"`
}

// NewDefaultLogConfig creates default logging configuration
func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		LogLevel:      "info",
		LogFormat:     "console",
		EnableConsole: true,
		MaxLogSizeMB:  10,
		MaxLogBackups: 3,
	}
}
