package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// WriterFactory creates log writers based on configuration
type WriterFactory struct{}

// NewWriterFactory creates a new writer factory
func NewWriterFactory() *WriterFactory {
	return &WriterFactory{}
}

// CreateConsoleWriter creates a console writer for the given format
func (wf *WriterFactory) CreateConsoleWriter(format LogFormat) io.Writer {
	if format == FormatJSON {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// CreateFileWriter creates a rotating file writer
func (wf *WriterFactory) CreateFileWriter(cfg LoggerConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}
}
