package logger

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/diffscope/diffscope/internal/common/errorwrapper"
	"github.com/diffscope/diffscope/internal/config"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	config    LoggerConfig
	factory   *WriterFactory
	converter *ConfigConverter
	err       error
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		config:    DefaultLoggerConfig(),
		factory:   NewWriterFactory(),
		converter: NewConfigConverter(),
	}
}

// WithConfig sets the logger configuration
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	loggerConfig, err := lb.converter.ConvertConfig(cfg)
	if err != nil {
		lb.err = err
		return lb
	}
	lb.config = loggerConfig
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (zerolog.Logger, error) {
	if lb.err != nil {
		return zerolog.Nop(), lb.err
	}
	if err := lb.validateConfig(); err != nil {
		return zerolog.Nop(), err
	}

	writers := lb.createWriters()
	if len(writers) == 0 {
		return zerolog.Nop(), errorwrapper.NewError("no output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	instance := zerolog.New(multiWriter).
		Level(lb.config.Level).
		With().
		Timestamp().
		Logger()

	return instance, nil
}

// validateConfig validates the logger configuration
func (lb *LoggerBuilder) validateConfig() error {
	if lb.config.EnableFile && lb.config.FilePath == "" {
		return errorwrapper.NewValidationError("file_path", lb.config.FilePath, "file path required when file logging enabled")
	}
	if lb.config.MaxSizeMB <= 0 {
		return errorwrapper.NewValidationError("max_size_mb", lb.config.MaxSizeMB, "max size must be positive")
	}
	return nil
}

// createWriters creates the appropriate writers based on configuration
func (lb *LoggerBuilder) createWriters() []io.Writer {
	var writers []io.Writer

	if lb.config.EnableConsole {
		writers = append(writers, lb.factory.CreateConsoleWriter(lb.config.Format))
	}
	if lb.config.EnableFile {
		writers = append(writers, lb.factory.CreateFileWriter(lb.config))
	}

	return writers
}

// New builds a logger straight from application log configuration
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}
