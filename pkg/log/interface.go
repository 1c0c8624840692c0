// Package log provides a structured logging interface for MAPIE
// conformal-prediction operations.
//
// The interface is slog-compatible and implementation-agnostic: the library
// logs through Logger so callers can plug in slog, zerolog, or a test
// capture without changing call sites. Standard attribute keys live in
// attributes.go.
//
// Example:
//
//	logger := log.NewZerologLogger(os.Stderr).With(
//	    log.ModelNameKey, "TimeSeriesRegressor",
//	)
//	logger.Info("calibration started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 500,
//	)
package log

import (
	"context"
)

// Logger is a minimal structured logging interface with slog-style
// alternating key/value fields. With returns a child logger carrying
// pre-populated fields.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs potentially problematic, non-fatal conditions.
	Warn(msg string, fields ...any)

	// Error logs error conditions. If a field value is an error, the
	// implementation may extract stack trace information from it.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, value-compatible with slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Discard is a Logger that drops everything. It is the default for library
// components when no logger is configured.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Debug(string, ...any)                {}
func (discardLogger) Info(string, ...any)                 {}
func (discardLogger) Warn(string, ...any)                 {}
func (discardLogger) Error(string, ...any)                {}
func (discardLogger) With(...any) Logger                  { return Discard }
func (discardLogger) Enabled(context.Context, Level) bool { return false }
