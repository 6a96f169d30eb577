package registry

import (
	"bufio"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/jinterlante1206/research-assistant/internal/textutil"
)

// normalizeRepoURL strips the "git+" scheme prefix and trailing ".git"
// suffix npm/crates commonly embed in repository URLs.
func normalizeRepoURL(raw string) string {
	s := strings.TrimPrefix(raw, "git+")
	s = strings.TrimSuffix(s, ".git")
	return s
}

func urlEscape(s string) string {
	return url.QueryEscape(s)
}

// lastUpdatedLayouts covers the ISO-ish timestamp shapes NPM, PyPI,
// crates.io, and the Go module proxy each report.
var lastUpdatedLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// formatLastUpdated renders an upstream ISO-ish timestamp as a relative
// "Nh ago" / "Nd ago" phrase, per the package_info scenario's expectation
// of a human-readable last-updated phrase. Falls back to the raw string
// when it doesn't parse as any known layout, so callers never lose data.
func formatLastUpdated(raw string) string {
	if raw == "" {
		return raw
	}
	for _, layout := range lastUpdatedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return textutil.RelativeTime(t, time.Now())
		}
	}
	return raw
}

// truncate caps s at n characters, used for PyPI's license-text truncation
// rule (spec §4.4).
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// countRequireLines counts module require entries in a go.mod body: either
// a single-line "require x v1" directive, or lines inside a "require ("
// block, excluding the block's own open/close lines.
func countRequireLines(body io.Reader) int {
	scanner := bufio.NewScanner(body)
	inBlock := false
	count := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "require (":
			inBlock = true
		case inBlock && line == ")":
			inBlock = false
		case inBlock && line != "":
			count++
		case strings.HasPrefix(line, "require ") && !strings.HasSuffix(line, "("):
			count++
		}
	}
	return count
}
