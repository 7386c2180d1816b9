package log

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentStore, Output: &buf})
	l.Info("saved", FieldID, "abc")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "id=abc")
	assert.NotContains(t, out, "hidden")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, JSON: true}).WithComponent(ComponentHTTP)
	assert.Equal(t, ComponentHTTP, l.Component())

	l.Warn("slow")
	assert.Contains(t, buf.String(), `"component":"http"`)
}

func TestContextRoundTrip(t *testing.T) {
	l := Discard().WithComponent(ComponentTUI)
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.Equal(t, "unknown", FromContext(context.Background()).Component())
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "coffer.log")
	l, closer, err := ToFile(path, slog.LevelDebug)
	require.NoError(t, err)
	l.Debug("hello")
	require.NoError(t, closer.Close())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(strings.Repeat("?", 3)))
}
