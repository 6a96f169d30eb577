package errorparser

import (
	"regexp"

	"github.com/jinterlante1206/research-assistant/internal/textutil"
)

// importantTerms is always captured verbatim wherever it occurs in the
// input, ahead of any generic pattern extraction.
var importantTerms = []string{
	"CORS", "cors", "fetch", "async", "await", "Promise", "undefined", "null",
	"map", "filter", "reduce", "Access-Control-Allow-Origin", "XMLHttpRequest",
	"module", "import", "export", "require",
}

var quotedPattern = regexp.MustCompile("'([^']+)'|\"([^\"]+)\"|`([^`]+)`")
var identifierPattern = regexp.MustCompile(`\b([a-z]+[A-Z][a-zA-Z0-9]*|[a-z0-9]+_[a-z0-9_]+)\b`)

// ExtractKeyTerms yields the deduplicated, order-preserving set of key
// terms per spec §4.6's priority: whitelist terms, then quoted
// substrings, then CamelCase/snake_case identifiers of length ≥ 3,
// finally removing errorType itself since it's reported separately.
func ExtractKeyTerms(errorText, errorType string) []string {
	set := textutil.NewOrderedSet()

	for _, term := range importantTerms {
		if containsAny(errorText, []string{term}) {
			set.Add(term)
		}
	}

	for _, m := range quotedPattern.FindAllStringSubmatch(errorText, -1) {
		switch {
		case m[1] != "":
			set.Add(m[1])
		case m[2] != "":
			set.Add(m[2])
		case m[3] != "":
			set.Add(m[3])
		}
	}

	for _, m := range identifierPattern.FindAllString(errorText, -1) {
		if len(m) >= 3 {
			set.Add(m)
		}
	}

	set.Remove(errorType)
	return set.Items()
}
