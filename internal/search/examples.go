package search

import "fmt"

// ContentType selects how AugmentExamplesQuery biases the query.
type ContentType string

const (
	ContentCode     ContentType = "code"
	ContentArticles ContentType = "articles"
	ContentBoth     ContentType = "both"
)

// AugmentExamplesQuery implements the search_examples query-augmentation
// rule from spec §4.2: code mode adds a disjunctive site restriction,
// articles mode adds a disjunctive keyword set, and "both" issues the bare
// query unchanged.
func AugmentExamplesQuery(query string, contentType ContentType) string {
	switch contentType {
	case ContentCode:
		return fmt.Sprintf("%s (site:github.com OR site:stackoverflow.com OR site:gist.github.com)", query)
	case ContentArticles:
		return fmt.Sprintf("%s (tutorial|guide|article|blog|how to|documentation)", query)
	default:
		return query
	}
}
