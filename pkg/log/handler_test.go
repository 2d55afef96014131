package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prayaggordy/bivarnet/pkg/errors"
)

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	err := errors.NewValueError("BoxCox", "all values must be positive")
	logger.LogAttrs(context.Background(), slog.LevelError, "fit failed", ErrAttr(err))

	var record map[string]interface{}
	if jsonErr := json.Unmarshal(buf.Bytes(), &record); jsonErr != nil {
		t.Fatalf("output is not JSON: %v\n%s", jsonErr, buf.String())
	}
	if _, ok := record[ErrAttrKey]; !ok {
		t.Errorf("record missing %q attribute: %s", ErrAttrKey, buf.String())
	}
	if st, ok := record[StacktraceAttrKey].(string); !ok || st == "" {
		t.Errorf("record missing %q attribute: %s", StacktraceAttrKey, buf.String())
	}
}

func TestErrFmtHandlerWithoutError(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	logger.Info("plain record", slog.Int("n", 1))

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, ok := record[StacktraceAttrKey]; ok {
		t.Errorf("unexpected %q attribute on a record without an error", StacktraceAttrKey)
	}
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		if got := ToLogLevel(tt.in); got != tt.want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToLogLevelPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown level")
		}
	}()
	ToLogLevel("verbose")
}
