package docdiscoverer

import "strings"

// normalizeAlias lowercases and trims an API name for alias-table lookups,
// mirroring internal/status's normalizeAlias.
func normalizeAlias(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// slugify reduces an API name to the bare token used in pattern-probe URLs,
// e.g. "Stripe API" -> "stripe".
func slugify(name string) string {
	s := normalizeAlias(name)
	s = strings.TrimSuffix(s, " api")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}
