package log

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger creates a Logger backed by zerolog writing JSON lines to
// w. Pass nil to write to stderr.
func NewZerologLogger(w io.Writer) *ZerologLogger {
	if w == nil {
		w = os.Stderr
	}
	return &ZerologLogger{
		logger: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// Debug implements Logger.Debug.
func (z *ZerologLogger) Debug(msg string, fields ...any) {
	z.emit(z.logger.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (z *ZerologLogger) Info(msg string, fields ...any) {
	z.emit(z.logger.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (z *ZerologLogger) Warn(msg string, fields ...any) {
	z.emit(z.logger.Warn(), msg, fields)
}

// Error implements Logger.Error.
func (z *ZerologLogger) Error(msg string, fields ...any) {
	z.emit(z.logger.Error(), msg, fields)
}

// With implements Logger.With.
func (z *ZerologLogger) With(fields ...any) Logger {
	ctx := z.logger.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &ZerologLogger{logger: ctx.Logger()}
}

// Enabled implements Logger.Enabled.
func (z *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return zerolog.Level(zerologLevel(level)) >= z.logger.GetLevel()
}

func (z *ZerologLogger) emit(event *zerolog.Event, msg string, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case error:
			if obj, isObj := v.(zerolog.LogObjectMarshaler); isObj {
				event = event.Object(key, obj)
			} else {
				event = event.AnErr(key, v)
			}
		default:
			event = event.Interface(key, v)
		}
	}
	event.Msg(msg)
}

func zerologLevel(level Level) int8 {
	switch {
	case level <= LevelDebug:
		return int8(zerolog.DebugLevel)
	case level <= LevelInfo:
		return int8(zerolog.InfoLevel)
	case level <= LevelWarn:
		return int8(zerolog.WarnLevel)
	default:
		return int8(zerolog.ErrorLevel)
	}
}
