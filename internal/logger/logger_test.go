package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(b, &entry))
	return entry
}

// TestNewLogger_Fields verifies that every entry carries role, timestamp and
// the caller function name.
func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test-role", &buf)

	l.Info().Msg("hello")

	entry := decodeLine(t, buf.Bytes())
	assert.Equal(t, "test-role", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_Fields")
	assert.Equal(t, "hello", entry["message"])
}

// TestNewVaultLogger_LevelFilters verifies that entries below the configured
// level are dropped.
func TestNewVaultLogger_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vault.log")

	l, closer, err := NewVaultLogger("cli", "warn", path)
	require.NoError(t, err)

	l.Info().Msg("dropped")
	l.Warn().Msg("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", decodeLine(t, []byte(lines[0]))["message"])
}

// TestNewVaultLogger_BadLevel verifies that an unknown level is rejected.
func TestNewVaultLogger_BadLevel(t *testing.T) {
	_, _, err := NewVaultLogger("cli", "loud", "")
	assert.Error(t, err)
}

// TestNop_DiscardsOutput verifies Nop never panics and is usable.
func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	l.Error().Msg("nothing")
}

// TestComponent_InheritsFields verifies that component loggers keep the
// parent's fields and add their own.
func TestComponent_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("parent", &buf)

	parent.Component("recovery").Info().Msg("from child")

	line := decodeLine(t, buf.Bytes())
	assert.Equal(t, "parent", line["role"])
	assert.Equal(t, "recovery", line["component"])
}

// TestFromContext_RoundTrip verifies that a logger attached with
// WithContext is returned by FromContext.
func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("ctx", &buf)

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("via ctx")

	assert.Equal(t, "ctx", decodeLine(t, buf.Bytes())["role"])
}

// TestFromContext_NoLogger verifies FromContext never returns nil.
func TestFromContext_NoLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}
