package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/partwire/internal/ports"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf, Component: "registry"})
	require.NoError(t, err)

	derived := log.With("contract", "formatter", "phase", "compose")
	derived.Info(context.Background(), "ordered implementations", "count", 2)

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "ordered implementations", entry["message"])
	require.Equal(t, "formatter", entry["contract"])
	require.Equal(t, "compose", entry["phase"])
	require.Equal(t, "registry", entry["component"])
	require.Equal(t, float64(2), entry["count"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	log.Debug(context.Background(), "this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	ctx := ports.WithCorrelationID(context.Background(), "abc-123")
	log.With("listener", "outline").Error(ctx, "listener failed", "error", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "listener failed", entry["message"])
	require.Equal(t, "outline", entry["listener"])
	require.Equal(t, "boom", entry["error"])
	require.Equal(t, "abc-123", entry["correlation_id"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNoOpLoggerIsSilent(t *testing.T) {
	t.Parallel()

	log := NewNoOp()
	require.NotPanics(t, func() {
		log.With("k", "v").Info(context.Background(), "ignored")
	})
}
