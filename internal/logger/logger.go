package logger

import (
	stdlog "log"

	"depthcharge/internal/config"

	"github.com/rs/zerolog"
)

// New builds a zerolog logger from the application log configuration.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	return NewBuilder().WithConfig(cfg).Build()
}

// NewWithScanID builds a logger whose file output is organized per scan
// session.
func NewWithScanID(cfg config.LogConfig, scanID string) (zerolog.Logger, error) {
	return NewBuilder().WithConfig(cfg).WithScanID(scanID).Build()
}

// redirectStandardLog routes the standard library log package into zerolog so
// third-party packages that log through it end up in the same stream.
func redirectStandardLog(logger zerolog.Logger) {
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
}
