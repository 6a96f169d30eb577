package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SEARXNG_BASE_URL", "MCP_MAX_RESPONSE_CHARS", "XDG_CONFIG_HOME"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg := Load()
	assert.Equal(t, "http://localhost:2288/search", cfg.SearxngBaseURL)
	assert.Equal(t, 8000, cfg.MaxResponseChars)
	assert.Equal(t, 5, cfg.SearxngDefaultResults)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MCP_MAX_RESPONSE_CHARS", "200")
	t.Setenv("SEARXNG_MAX_RESULTS", "10")
	cfg := Load()
	assert.Equal(t, 200, cfg.MaxResponseChars)
	assert.Equal(t, 10, cfg.SearxngMaxResults)
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgDir := filepath.Join(dir, "web-research-assistant")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	yamlContent := "status_pages:\n  acme: https://status.acme.example\ndoc_hosts:\n  acme: https://docs.acme.example\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yamlContent), 0o644))

	cfg := Load()
	assert.Equal(t, "https://status.acme.example", cfg.Overlay.StatusPages["acme"])
	assert.Equal(t, "https://docs.acme.example", cfg.Overlay.DocHosts["acme"])
}
