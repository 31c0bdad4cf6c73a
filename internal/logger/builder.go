package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"depthcharge/internal/common/errorwrapper"
	"depthcharge/internal/config"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Builder provides a fluent interface for constructing loggers.
type Builder struct {
	cfg    config.LogConfig
	scanID string
}

// NewBuilder creates a new logger builder with default configuration.
func NewBuilder() *Builder {
	return &Builder{cfg: config.NewDefaultLogConfig()}
}

// WithConfig sets the logger configuration.
func (b *Builder) WithConfig(cfg config.LogConfig) *Builder {
	b.cfg = cfg
	return b
}

// WithScanID sets the scan ID used to organize log files by scan session.
func (b *Builder) WithScanID(scanID string) *Builder {
	b.scanID = scanID
	return b
}

// Build creates the logger instance.
func (b *Builder) Build() (zerolog.Logger, error) {
	level, err := parseLevel(b.cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	writers := []io.Writer{b.consoleWriter()}
	if b.cfg.LogFile != "" {
		writers = append(writers, b.fileWriter())
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)
	redirectStandardLog(logger)
	return logger, nil
}

func (b *Builder) consoleWriter() io.Writer {
	if strings.EqualFold(b.cfg.LogFormat, "json") {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{Out: os.Stderr}
}

func (b *Builder) fileWriter() io.Writer {
	path := b.cfg.LogFile
	if b.scanID != "" {
		dir := filepath.Dir(path)
		path = filepath.Join(dir, "scans", b.scanID, filepath.Base(path))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		path = b.cfg.LogFile
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(b.cfg.MaxLogSizeMB, 100),
		MaxBackups: orDefault(b.cfg.MaxLogBackups, 3),
		LocalTime:  true,
	}
}

func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "fatal":
		return zerolog.FatalLevel, nil
	default:
		return zerolog.InfoLevel, errorwrapper.NewValidationError("log_level", level, "unknown log level")
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
