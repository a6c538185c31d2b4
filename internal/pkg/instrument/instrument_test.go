package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestCorrelationID(t *testing.T) {
	ctx := SetCorrelationID(context.Background(), "abc-123")

	assert.Equal(t, "abc-123", GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestHandler_StampsServiceAndCorrelation(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "mailadapter", slog.LevelInfo, nil, nil))
	ctx := SetCorrelationID(context.Background(), "cid-1")

	// Act
	logger.InfoContext(ctx, "email adapted", "provider", "AWS")

	// Assert
	line := decodeLine(t, &buf)
	assert.Equal(t, "mailadapter", line["service"])
	assert.Equal(t, "cid-1", line["_cID"])
	assert.Equal(t, "AWS", line["provider"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Contains(t, line, "ts")
}

func TestHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "svc", slog.LevelWarn, nil, nil))

	logger.Info("dropped")

	assert.Zero(t, buf.Len())
}

func TestHandler_Masks(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "svc", slog.LevelInfo, nil, []string{" Authorization ", "password"}))

	// Act
	logger.Info("request",
		"authorization", "Bearer abc",
		"body", `{"user":"a","password":"secret"}`,
		"headers", map[string]string{"Authorization": "x", "Accept": "json"},
		slog.Group("nested", "password", "p"),
	)

	// Assert
	line := decodeLine(t, &buf)
	assert.Equal(t, "***", line["authorization"])
	assert.JSONEq(t, `{"user":"a","password":"***"}`, line["body"].(string))
	assert.Equal(t, map[string]any{"Authorization": "***", "Accept": "json"}, line["headers"])
	assert.Equal(t, map[string]any{"password": "***"}, line["nested"])
}

func TestHandler_LeavesPlainTextAlone(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "svc", slog.LevelInfo, nil, []string{"password"}))

	logger.Info("payload", "dump", "\n----\n{\"password\":\"x\"}\n----")

	line := decodeLine(t, &buf)
	assert.Equal(t, "\n----\n{\"password\":\"x\"}\n----", line["dump"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestClampRatio(t *testing.T) {
	assert.InDelta(t, 0.0, clampRatio(-1), 0)
	assert.InDelta(t, 0.25, clampRatio(0.25), 0)
	assert.InDelta(t, 1.0, clampRatio(3), 0)
}

func TestNew_Disabled(t *testing.T) {
	ins, err := New(context.Background(), &Config{ServiceName: "svc"})

	require.NoError(t, err)
	assert.NotNil(t, ins.Tracer("t"))
	assert.NotNil(t, ins.Meter("m"))
	assert.NoError(t, ins.Shutdown(context.Background()))
}
