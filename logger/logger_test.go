package logger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 2},
		{name: "Trace mode", jsonOutput: false, verbosity: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			assert.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, tt.verbosity >= VerbosityTrace, TraceEnabled())

			Logger = zap.NewNop().Sugar()
			verbosity = 0
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Trace (-vvv)", LevelName(5))
	assert.True(t, ShouldLogTrace(3))
	assert.False(t, ShouldLogTrace(2))
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core))
	defer Use(zap.NewNop())

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithComponent(ctx, "report")
	LoggerFromContext(ctx).Infow("Page built", FieldPage, "fullstar")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields[FieldRequestID])
	assert.Equal(t, "report", fields[FieldComponent])
	assert.Equal(t, "fullstar", fields[FieldPage])
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestLoggerFromContext_NoFields(t *testing.T) {
	assert.Same(t, Logger, LoggerFromContext(context.Background()))
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "r.builder", abbreviateName("report.builder"))
	assert.Equal(t, "template", abbreviateName("template"))
}

func TestMinimalEncoder(t *testing.T) {
	SetTheme("gruvbox")
	defer SetTheme("everforest")

	enc := newMinimalEncoder()
	buf, err := enc.EncodeEntry(zapcore.Entry{
		Level:      zapcore.WarnLevel,
		Time:       time.Date(2024, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: "template.cache",
		Message:    "Template changed",
	}, []zapcore.Field{
		zap.String(FieldPath, "pages/dial.yaml"),
		zap.Int(FieldCount, 80),
		zap.Error(errors.New("boom")),
		zap.String("ignored", "value"),
	})
	require.NoError(t, err)

	line := buf.String()
	assert.Contains(t, line, "13:04:35")
	assert.Contains(t, line, "WARN")
	assert.Contains(t, line, "t.cache")
	assert.Contains(t, line, "Template changed")
	assert.Contains(t, line, "pages/dial.yaml")
	assert.Contains(t, line, "80")
	assert.Contains(t, line, "boom")
	assert.NotContains(t, line, "ignored")
	assert.True(t, strings.HasSuffix(line, "\n"))
}
