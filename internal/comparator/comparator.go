// Package comparator implements the Comparator (spec §4.9): fanning out,
// per technology, a registry lookup, a search-based repository guess, and
// one meta-search per comparison aspect, then aggregating the results into
// an aspect/tech matrix.
//
// Grounded on an orchestrator's fan-out pattern (bounded concurrent
// sub-tasks joined on a shared context) generalized from per-request
// tool dispatch to per-technology data gathering, using
// golang.org/x/sync/errgroup the same way that service's startup code
// joins goroutines.
package comparator

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/search"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// NotFoundSentinel is substituted for any aspect or field the fan-out
// could not resolve, per spec §4.9 ("missing fields are recorded as
// Information not found without failing the whole call").
const NotFoundSentinel = "Information not found"

// defaultAspects maps an inferred or provided category to its aspect list.
var defaultAspects = map[model.TechCategory][]string{
	model.CategoryFramework: {"performance", "learning_curve", "ecosystem", "popularity", "features"},
	model.CategoryLibrary:   {"performance", "features", "ecosystem", "popularity", "bundle_size"},
	model.CategoryDatabase:  {"performance", "data_model", "scaling", "use_cases", "ecosystem"},
	model.CategoryLanguage:  {"performance", "learning_curve", "ecosystem", "jobs", "use_cases"},
	model.CategoryTool:      {"performance", "features", "configuration", "ecosystem"},
}

// registriesToTry is the order the Comparator probes when a technology's
// package registry isn't given explicitly.
var registriesToTry = []model.Registry{model.RegistryNPM, model.RegistryPyPI, model.RegistryCrates, model.RegistryGo}

// RegistryLookup is the narrow capability the Comparator needs from
// internal/registry.
type RegistryLookup interface {
	GetPackageInfo(ctx context.Context, name string, registry model.Registry) (model.PackageInfo, error)
}

// RepoSearcher is the narrow capability the Comparator needs from
// internal/repo to guess a technology's repository.
type RepoSearcher interface {
	SearchCode(ctx context.Context, query string, maxResults int) ([]model.CodeSearchHit, error)
}

// Searcher is the narrow capability the Comparator needs from internal/search.
type Searcher interface {
	Query(ctx context.Context, p search.Params) ([]model.SearchHit, error)
}

// Client runs comparisons.
type Client struct {
	registry RegistryLookup
	repos    RepoSearcher
	searcher Searcher
	log      *logging.Logger
}

// New constructs a Client.
func New(registry RegistryLookup, repos RepoSearcher, searcher Searcher, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Default()
	}
	return &Client{registry: registry, repos: repos, searcher: searcher, log: log.With("component", "comparator")}
}

// techResult holds one technology's gathered data before aggregation.
type techResult struct {
	name    string
	pkg     *model.PackageInfo
	repo    *model.CodeSearchHit
	aspects map[string]string
	sources []string
}

// Compare runs the fan-out for 2-5 technologies and aggregates the result.
func (c *Client) Compare(ctx context.Context, technologies []string, category model.TechCategory, aspects []string, maxResultsPerTech int) (model.Comparison, error) {
	if category == "" || category == model.CategoryAuto {
		category = inferCategory(technologies)
	}
	if len(aspects) == 0 {
		aspects = defaultAspects[category]
		if aspects == nil {
			aspects = defaultAspects[model.CategoryTool]
		}
	}
	if maxResultsPerTech <= 0 {
		maxResultsPerTech = 3
	}

	results := make([]*techResult, len(technologies))
	g, gctx := errgroup.WithContext(ctx)
	for i, tech := range technologies {
		i, tech := i, tech
		g.Go(func() error {
			results[i] = c.gatherOne(gctx, tech, aspects, maxResultsPerTech)
			return nil
		})
	}
	// Errors from individual gatherers never abort the group: gatherOne
	// always returns a non-nil techResult and records partial failure per
	// field, per spec's "single technology sub-task is allowed to
	// partially fail" rule.
	_ = g.Wait()

	return aggregate(technologies, category, aspects, results), nil
}

func (c *Client) gatherOne(ctx context.Context, tech string, aspects []string, maxResults int) *techResult {
	tr := &techResult{name: tech, aspects: make(map[string]string, len(aspects))}

	if c.registry != nil {
		for _, reg := range registriesToTry {
			info, err := c.registry.GetPackageInfo(ctx, tech, reg)
			if err == nil {
				tr.pkg = &info
				break
			}
		}
	}

	if c.repos != nil {
		hits, err := c.repos.SearchCode(ctx, tech, 1)
		if err == nil && len(hits) > 0 {
			tr.repo = &hits[0]
			tr.sources = append(tr.sources, "https://github.com/"+hits[0].Owner+"/"+hits[0].Repo)
		}
	}

	if c.searcher != nil {
		for _, aspect := range aspects {
			value, source := c.searchAspect(ctx, tech, aspect, maxResults)
			if value == "" {
				value = NotFoundSentinel
			}
			tr.aspects[aspect] = value
			if source != "" {
				tr.sources = append(tr.sources, source)
			}
		}
	}

	return tr
}

var sentenceSplitter = regexp.MustCompile(`(?s)[^.!?]+[.!?]?`)

func (c *Client) searchAspect(ctx context.Context, tech, aspect string, maxResults int) (value, source string) {
	keyword := strings.ReplaceAll(aspect, "_", " ")
	hits, err := c.searcher.Query(ctx, search.Params{Query: tech + " " + keyword, MaxResults: maxResults})
	if err != nil {
		return "", ""
	}
	for _, hit := range hits {
		for _, sentence := range sentenceSplitter.FindAllString(hit.Snippet, -1) {
			if strings.Contains(strings.ToLower(sentence), strings.ToLower(keyword)) {
				return strings.TrimSpace(sentence), hit.URL
			}
		}
	}
	return "", ""
}

func aggregate(technologies []string, category model.TechCategory, aspects []string, results []*techResult) model.Comparison {
	aspectMatrix := make(map[string]map[string]string, len(aspects))
	for _, aspect := range aspects {
		aspectMatrix[aspect] = make(map[string]string, len(technologies))
	}

	summary := make(map[string]string, len(technologies))
	var sources []string
	seenSources := make(map[string]bool)

	for i, tech := range technologies {
		tr := results[i]
		if tr == nil {
			tr = &techResult{name: tech}
		}
		for _, aspect := range aspects {
			value, ok := tr.aspects[aspect]
			if !ok {
				value = NotFoundSentinel
			}
			aspectMatrix[aspect][tech] = value
		}
		summary[tech] = bestForSentence(tr)
		for _, src := range tr.sources {
			if !seenSources[src] {
				seenSources[src] = true
				sources = append(sources, src)
			}
		}
	}

	return model.Comparison{
		Technologies: technologies,
		Category:     category,
		Aspects:      aspectMatrix,
		Summary:      summary,
		Sources:      sources,
	}
}

func bestForSentence(tr *techResult) string {
	for _, aspect := range []string{"popularity", "performance", "features"} {
		if v, ok := tr.aspects[aspect]; ok && v != NotFoundSentinel {
			return v
		}
	}
	if tr.pkg != nil && tr.pkg.Description != "" {
		return tr.pkg.Description
	}
	return NotFoundSentinel
}

var languageHints = map[string]model.TechCategory{
	"python": model.CategoryLanguage, "rust": model.CategoryLanguage, "go": model.CategoryLanguage,
	"java": model.CategoryLanguage, "typescript": model.CategoryLanguage, "javascript": model.CategoryLanguage,
	"postgresql": model.CategoryDatabase, "postgres": model.CategoryDatabase, "mongodb": model.CategoryDatabase,
	"redis": model.CategoryDatabase, "mysql": model.CategoryDatabase, "sqlite": model.CategoryDatabase,
	"react": model.CategoryFramework, "vue": model.CategoryFramework, "angular": model.CategoryFramework,
	"django": model.CategoryFramework, "flask": model.CategoryFramework, "express": model.CategoryFramework,
	"webpack": model.CategoryTool, "terraform": model.CategoryTool, "docker": model.CategoryTool,
}

// inferCategory guesses a category from the first technology name whose
// lowercase form matches a known hint, defaulting to "library".
func inferCategory(technologies []string) model.TechCategory {
	for _, tech := range technologies {
		if cat, ok := languageHints[strings.ToLower(tech)]; ok {
			return cat
		}
	}
	return model.CategoryLibrary
}
