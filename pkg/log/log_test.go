package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	pkgerrors "github.com/LacombeLouis/MAPIE/pkg/errors"
)

func TestTestLoggerCapture(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Info("calibration started",
		OperationKey, OperationFit,
		SamplesKey, 500,
		FeaturesKey, 10,
	)
	logger.Warn("resampling left rows untouched", NResamplingsKey, 1)

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("GetLogEntries() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if !logger.ContainsField(OperationKey, OperationFit) {
		t.Error("expected fit operation field in captured logs")
	}
	if !strings.Contains(buffer.String(), "resampling left rows untouched") {
		t.Error("expected warning message in buffer")
	}
}

func TestTestLoggerLevelFiltering(t *testing.T) {
	logger, _ := NewTestLogger(LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Error("visible")

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("GetLogEntries() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after level filtering, got %d", len(entries))
	}
	if entries[0]["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entries[0]["level"])
	}
}

func TestTestLoggerWith(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)
	child := logger.With(ModelNameKey, "TimeSeriesRegressor")

	child.Info("predicting", NAlphaKey, 2)

	tl := child.(*TestLogger)
	if !tl.ContainsField(ModelNameKey, "TimeSeriesRegressor") {
		t.Error("expected inherited model name field")
	}
	if !tl.Enabled(context.Background(), LevelInfo) {
		t.Error("info level should be enabled")
	}
}

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := NewErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	err := pkgerrors.NewValueError("Predict", "alpha must be in (0, 1)")
	logger.Error("prediction failed", ErrAttr(err))

	var entry map[string]interface{}
	line := strings.TrimSpace(buf.String())
	if jsonErr := json.Unmarshal([]byte(line), &entry); jsonErr != nil {
		t.Fatalf("log output is not JSON: %v", jsonErr)
	}
	if _, ok := entry[ErrAttrKey]; !ok {
		t.Error("expected error attribute in log output")
	}
	trace, ok := entry[StacktraceAttrKey].(string)
	if !ok || trace == "" {
		t.Error("expected a non-empty stacktrace attribute in log output")
	}
}

func TestSetupLoggerExtractsStacktrace(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	SetupLogger("debug", &buf)

	err := pkgerrors.NewNotFittedError("TimeSeriesRegressor", "Predict")
	slog.Error("calibration unavailable", ErrAttr(err))

	out := buf.String()
	if !strings.Contains(out, "calibration unavailable") {
		t.Fatalf("expected message in default slog output, got: %s", out)
	}
	if !strings.Contains(out, StacktraceAttrKey) {
		t.Errorf("expected %q field in default slog output, got: %s", StacktraceAttrKey, out)
	}
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ToLogLevel(tt.name); got != tt.want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSetupZerologWarnings(t *testing.T) {
	var buf bytes.Buffer
	SetupZerologWarnings(&buf)
	defer ResetWarnings()

	pkgerrors.Warn(pkgerrors.NewResamplingWarning(2, 5))

	out := buf.String()
	if !strings.Contains(out, "untouched by resampling") {
		t.Errorf("expected warning text in zerolog output, got: %s", out)
	}
	if !strings.Contains(out, "\"n_unsampled\":2") {
		t.Errorf("expected structured field n_unsampled, got: %s", out)
	}
}
