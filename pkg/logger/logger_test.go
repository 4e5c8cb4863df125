package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewWithLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, slog.LevelWarn, false)

	l.Info("hidden")
	l.Debug("hidden")
	require.Empty(t, buf.String())

	l.Warn("split fallback", "dialect", "mysql")
	require.Contains(t, buf.String(), "split fallback")
	require.Contains(t, buf.String(), "dialect=mysql")
	require.NotContains(t, buf.String(), "\x1b[")
}

func TestErrorAttr(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, slog.LevelDebug, false)
	l.Error("failed", Error(errors.New("boom")))
	require.Contains(t, buf.String(), "boom")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestDiscard(t *testing.T) {
	require.NotPanics(t, func() {
		Discard().Error("dropped")
	})
}
