package logs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_DefaultIsNop(t *testing.T) {
	require.NotNil(t, Logger())
	require.False(t, Logger().Core().Enabled(zapcore.ErrorLevel))
}

func TestSetLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Named("storage").Info("opened", zap.String(FieldPath, "/tmp/a.bts"))

	entries := recorded.All()
	require.Len(t, entries, 1)
	require.Equal(t, "opened", entries[0].Message)
	ctx := entries[0].ContextMap()
	require.Equal(t, "storage", ctx[FieldComponent])
	require.Equal(t, "/tmp/a.bts", ctx[FieldPath])

	SetLogger(nil)
	require.False(t, Logger().Core().Enabled(zapcore.ErrorLevel))
}

func TestNewLogger(t *testing.T) {
	t.Setenv(EnvMode, "test")
	l, err := NewLogger()
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zapcore.DebugLevel))

	t.Setenv(EnvMode, "")
	l, err = NewLogger()
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerAt(t *testing.T) {
	l, err := NewLoggerAt("warn")
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLoggerAt("loud")
	require.Error(t, err)
}
