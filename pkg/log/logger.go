package log

import (
	"io"
	"log/slog"
	"os"
)

// SetupLogger installs a process-wide slog JSON logger with stack-trace
// extraction for wrapped errors. Library code logs through the Logger
// interface; this is for binaries that want the default slog output routed
// the same way. Pass nil to write to stdout.
func SetupLogger(level string, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(level),
	}
	handler := slog.NewJSONHandler(w, &ops)
	slog.SetDefault(slog.New(NewErrFmtHandler(handler)))
}

// ToLogLevel converts a level name to a slog.Level. Unknown names fall back
// to info.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr wraps an error for slog so ErrFmtHandler can pick it up.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
