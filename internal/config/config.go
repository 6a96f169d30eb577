// Package config assembles the server's immutable settings once at
// startup, following an env-first configuration idiom (getEnvString/
// getEnvInt helpers) plus an optional YAML overlay for the curated alias
// tables that are too large to comfortably hold as env vars.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is constructed once in main and passed down by value or pointer
// to every component that needs it. It is never mutated after New returns.
type Config struct {
	SearxngBaseURL         string
	SearxngDefaultCategory string
	SearxngDefaultResults  int
	SearxngMaxResults      int
	SearxngCrawlMaxChars   int

	MaxResponseChars int
	UsageLogPath     string

	PixabayAPIKey string
	GitHubToken   string
	UserAgent     string

	MetricsAddr string // empty disables the optional Prometheus listener

	// Overlay holds curated tables loaded from an optional YAML config
	// file, supplementing the built-in alias tables in docdiscoverer and
	// status packages.
	Overlay Overlay
}

// Overlay is the optional operator-supplied extension to the curated
// alias tables (spec §4.7, §4.11).
type Overlay struct {
	StatusPages map[string]string `yaml:"status_pages"`
	DocHosts    map[string]string `yaml:"doc_hosts"`
}

// Load builds a Config from the environment, then merges in an optional
// YAML overlay file if one exists at the resolved path. Missing or
// unreadable overlay files are not fatal — the built-in tables still work.
func Load() Config {
	cfg := Config{
		SearxngBaseURL:         getEnvString("SEARXNG_BASE_URL", "http://localhost:2288/search"),
		SearxngDefaultCategory: getEnvString("SEARXNG_DEFAULT_CATEGORY", "general"),
		SearxngDefaultResults:  getEnvInt("SEARXNG_DEFAULT_RESULTS", 5),
		SearxngMaxResults:      getEnvInt("SEARXNG_MAX_RESULTS", 10),
		SearxngCrawlMaxChars:   getEnvInt("SEARXNG_CRAWL_MAX_CHARS", 8000),

		MaxResponseChars: getEnvInt("MCP_MAX_RESPONSE_CHARS", 8000),
		UsageLogPath:     getEnvString("MCP_USAGE_LOG", defaultUsagePath()),

		PixabayAPIKey: os.Getenv("PIXABAY_API_KEY"),
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		UserAgent:     getEnvString("SEARXNG_MCP_USER_AGENT", "web-research-assistant/1.0"),

		MetricsAddr: os.Getenv("MCP_METRICS_ADDR"),
	}

	if overlay, err := loadOverlay(overlayPath()); err == nil {
		cfg.Overlay = overlay
	}
	return cfg
}

func defaultUsagePath() string {
	return filepath.Join(configDir(), "usage.json")
}

func overlayPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "web-research-assistant")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "web-research-assistant")
}

func loadOverlay(path string) (Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overlay{}, err
	}
	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overlay{}, err
	}
	return o, nil
}

func getEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return defaultValue
}
