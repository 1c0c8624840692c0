package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	pkgerrors "github.com/LacombeLouis/MAPIE/pkg/errors"
)

// SetupZerologWarnings routes library warnings (pkg/errors.Warn) through a
// zerolog logger. Warning types implementing zerolog.LogObjectMarshaler are
// emitted with their structured fields, others with the plain message.
//
// Pass nil to write to stderr.
func SetupZerologWarnings(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logger := zerolog.New(w).With().Timestamp().Logger()

	pkgerrors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.EmbedObject(obj).Msg(warning.Error())
			return
		}
		event.Msg(warning.Error())
	})
}

// ResetWarnings removes the zerolog warning route, restoring the plain
// handler installed via pkg/errors.SetWarningHandler.
func ResetWarnings() {
	pkgerrors.SetZerologWarnFunc(nil)
}
