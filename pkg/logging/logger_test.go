package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	l := New(Config{Level: LevelDebug, Service: "test-svc", LogDir: dir, Quiet: true})
	defer l.Close()

	l.Info("hello", "n", 1)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, "test-svc.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), `"service":"test-svc"`)
}

func TestDefaultDoesNotPanic(t *testing.T) {
	l := Default()
	l.Debug("ignored")
	l.Warn("shown")
	assert.NoError(t, l.Close())
}
