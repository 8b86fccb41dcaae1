package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmanage/docsite/pkg/logger"
)

type ctxKey struct{}

func langExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return slog.String("lang", v), true
	}
	return slog.Attr{}, false
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestDecorator_AddsExtractedAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := logger.NewHandler(&buf, logger.Config{Level: "info"})
	log := slog.New(logger.NewLogHandlerDecorator(h, langExtractor, nil))

	ctx := context.WithValue(context.Background(), ctxKey{}, "fr")
	log.InfoContext(ctx, "page rendered", slog.String("path", "/docs/"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "page rendered", rec["msg"])
	assert.Equal(t, "fr", rec["lang"])
	assert.Equal(t, "/docs/", rec["path"])
}

func TestDecorator_SkipsMissingValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(logger.NewLogHandlerDecorator(logger.NewHandler(&buf, logger.Config{}), langExtractor))
	log.With("component", "store").WithGroup("g").Info("loaded", "n", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.NotContains(t, rec, "lang")
	assert.Equal(t, "store", rec["component"])
	assert.Equal(t, map[string]any{"n": float64(3)}, rec["g"])
}

func TestNewHandler_TextFormatAndLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(logger.NewHandler(&buf, logger.Config{Level: "warn", Format: "text"}))

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown", "lang", "de")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "lang=de")
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
