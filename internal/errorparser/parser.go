package errorparser

import (
	"context"
	"net/url"
	"strings"

	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/search"
)

// excludedHosts are hit hosts considered irrelevant to debugging discussion
// (registry/package-index landing pages, not forums).
var excludedHosts = map[string]bool{
	"hub.docker.com": true,
	"crates.io":      true,
	"npmjs.com":      true,
	"pypi.org":       true,
	"pkg.go.dev":     true,
}

// Searcher is the narrow search capability Translate delegates to.
type Searcher interface {
	Query(ctx context.Context, p search.Params) ([]model.SearchHit, error)
}

// Translate runs the full error-translation pipeline: detect, classify,
// extract terms, build a query, search, filter, rank.
func Translate(ctx context.Context, searcher Searcher, errorText, languageHint, frameworkHint string, maxResults int) (model.ParsedError, []model.SearchHit, error) {
	lang := model.Language(strings.ToUpper(languageHint))
	if languageHint == "" {
		lang = DetectLanguage(errorText)
	}
	fw := model.Framework(strings.ToUpper(frameworkHint))
	if frameworkHint == "" {
		fw = DetectFramework(errorText)
	}

	errorType := ExtractErrorType(errorText, lang)
	keyTerms := ExtractKeyTerms(errorText, errorType)
	file, line := ExtractFrame(errorText)

	parsed := model.ParsedError{
		Language:  lang,
		Framework: fw,
		ErrorType: errorType,
		Message:   errorText,
		File:      file,
		Line:      line,
		KeyTerms:  keyTerms,
	}

	if maxResults <= 0 {
		maxResults = 5
	}
	query := BuildSearchQuery(string(lang), string(fw), errorType, keyTerms)
	hits, err := searcher.Query(ctx, search.Params{Query: query, MaxResults: maxResults * 2})
	if err != nil {
		return parsed, nil, err
	}

	return parsed, FilterAndRank(hits, maxResults), nil
}

// BuildSearchQuery joins the non-empty fields with a trailing
// stackoverflow site restriction, per spec §4.6.
func BuildSearchQuery(language, framework, errorType string, keyTerms []string) string {
	parts := make([]string, 0, 4)
	if language != "" && language != string(model.LangUnknown) {
		parts = append(parts, language)
	}
	if framework != "" && framework != string(model.FrameworkNone) {
		parts = append(parts, framework)
	}
	if errorType != "" {
		parts = append(parts, errorType)
	}
	if len(keyTerms) > 0 {
		parts = append(parts, strings.Join(keyTerms, " "))
	}
	parts = append(parts, "site:stackoverflow.com")
	return strings.Join(parts, " ")
}

// FilterAndRank excludes hits on irrelevant hosts, sorts so
// stackoverflow.com hits precede all others while preserving within-group
// upstream order, and truncates to maxResults.
func FilterAndRank(hits []model.SearchHit, maxResults int) []model.SearchHit {
	filtered := make([]model.SearchHit, 0, len(hits))
	for _, h := range hits {
		if !excludedHosts[hostOf(h.URL)] {
			filtered = append(filtered, h)
		}
	}

	stackoverflow := make([]model.SearchHit, 0, len(filtered))
	others := make([]model.SearchHit, 0, len(filtered))
	for _, h := range filtered {
		if hostOf(h.URL) == "stackoverflow.com" {
			stackoverflow = append(stackoverflow, h)
		} else {
			others = append(others, h)
		}
	}
	ranked := append(stackoverflow, others...)

	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
