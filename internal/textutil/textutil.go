// Package textutil holds the small, pure text transforms shared by nearly
// every component in this server: response clamping (orchestrator §4.1),
// control-character sanitization (extractor §4.8), and relative-time
// rendering ("Nh ago" / "Nd ago", repo client §4.5).
package textutil

import (
	"fmt"
	"strings"
	"time"
)

// TruncationSuffix is appended whenever Clamp cuts a body short.
const TruncationSuffix = "\n\n…[truncated]"

// Clamp truncates s to at most n characters (runes), appending
// TruncationSuffix when truncation occurs. Clamp is idempotent: clamping
// an already-clamped string at the same limit returns it unchanged (R2).
func Clamp(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	suffixRunes := []rune(TruncationSuffix)
	keep := n - len(suffixRunes)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + TruncationSuffix
}

// Sanitize strips C0 control characters and U+007F from s, preserving
// tab/newline/carriage-return, and collapses runs of spaces (U+0020) to a
// single space; tab, newline and carriage return are kept unchanged.
// Sanitize is idempotent (R1).
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastWasSpace := false
	for _, r := range s {
		if r == '\t' || r == '\n' || r == '\r' {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if r <= 0x1F || r == 0x7F {
			continue
		}
		if r == ' ' {
			if lastWasSpace {
				continue
			}
			lastWasSpace = true
			b.WriteRune(r)
			continue
		}
		lastWasSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// RelativeTime renders t relative to now as "just now" under an hour, "Nh
// ago" for anything under a day and "Nd ago" beyond that, matching the repo client's documented
// last-updated rendering.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours < 1 {
			return "just now"
		}
		return fmt.Sprintf("%dh ago", hours)
	}
	days := int(d.Hours() / 24)
	return fmt.Sprintf("%dd ago", days)
}

// HumanCount renders a raw integer count as a short suffixed string
// ("50300000" -> "50.3M"), matching the registry client's download-count
// formatting contract.
func HumanCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return trimZero(float64(n)/1_000_000_000) + "B"
	case n >= 1_000_000:
		return trimZero(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return trimZero(float64(n)/1_000) + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// OrderedSet is a set preserving first-insertion order, used for
// ParsedError.keyTerms (spec §9: "specify contract, not data structure").
type OrderedSet struct {
	order   []string
	present map[string]struct{}
}

// NewOrderedSet returns an empty OrderedSet.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{present: make(map[string]struct{})}
}

// Add inserts v if not already present, preserving insertion order.
func (s *OrderedSet) Add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.present[v]; ok {
		return
	}
	s.present[v] = struct{}{}
	s.order = append(s.order, v)
}

// Remove deletes v from the set, if present, preserving the order of the
// remaining elements.
func (s *OrderedSet) Remove(v string) {
	if _, ok := s.present[v]; !ok {
		return
	}
	delete(s.present, v)
	for i, e := range s.order {
		if e == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Contains reports whether v is in the set.
func (s *OrderedSet) Contains(v string) bool {
	_, ok := s.present[v]
	return ok
}

// Items returns the set contents in insertion order.
func (s *OrderedSet) Items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
