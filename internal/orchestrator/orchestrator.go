// Package orchestrator implements the Orchestrator (spec §4.1): a
// transport-agnostic tool dispatcher. It validates parameters, invokes the
// matching handler under a panic guard (per-call deadlines come from each
// client's own HTTP timeout), clamps the response,
// records a UsageEvent for every call, and translates failures into a
// stable human-readable string rather than letting an error escape to the
// transport.
//
// Generalized from an orchestrator Service's HTTP route table to an
// in-process tool table, carrying over its validator-tag-driven
// parameter validation idiom.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/image"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/search"
	"github.com/jinterlante1206/research-assistant/internal/textutil"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// Searcher, Fetcher, ... are the narrow capabilities each handler needs.
// Concrete *Client types from the sibling packages satisfy these
// structurally, and tests substitute fakes.
type Searcher interface {
	Query(ctx context.Context, p search.Params) ([]model.SearchHit, error)
}

type Fetcher interface {
	FetchMarkdown(ctx context.Context, rawURL string, maxChars int) (string, error)
	FetchRaw(ctx context.Context, rawURL string, maxChars int) (string, error)
}

type RegistryClient interface {
	GetPackageInfo(ctx context.Context, name string, reg model.Registry) (model.PackageInfo, error)
	SearchPackages(ctx context.Context, query string, reg model.Registry, maxResults int) ([]model.PackageInfo, error)
}

type RepoClient interface {
	GetRepoInfo(ctx context.Context, owner, repo string) (model.RepoInfo, error)
	GetRecentCommits(ctx context.Context, owner, repo string, n int) ([]model.Commit, error)
}

type ImageClient interface {
	Search(ctx context.Context, p image.Params) ([]model.ImageResult, error)
}

type StatusClient interface {
	GetStatus(ctx context.Context, service string) (model.ServiceStatus, error)
}

type DocDiscoverer interface {
	DiscoverHost(ctx context.Context, apiName string) (string, error)
	CrawlTopic(ctx context.Context, docsHost, topic string, maxResults int) (map[string]string, error)
}

type Comparator interface {
	Compare(ctx context.Context, technologies []string, category model.TechCategory, aspects []string, maxResultsPerTech int) (model.Comparison, error)
}

type ChangelogEngine interface {
	Build(ctx context.Context, pkgName string, reg model.Registry, maxReleases int) (model.Changelog, error)
}

type UsageTracker interface {
	Track(event model.UsageEvent) error
}

// Metrics is the narrow capability the orchestrator needs from
// internal/observability.
type Metrics interface {
	Observe(tool string, durationSeconds float64, success bool, errorKind string)
}

// Config holds orchestrator-level tunables sourced from internal/config.
type Config struct {
	MaxResponseChars int
}

// Orchestrator wires every client/pipeline behind the stable tool catalog.
type Orchestrator struct {
	cfg      Config
	search   Searcher
	fetch    Fetcher
	registry RegistryClient
	repo     RepoClient
	image    ImageClient
	status   StatusClient
	docs     DocDiscoverer
	compare  Comparator
	changelog ChangelogEngine
	usage    UsageTracker
	metrics  Metrics
	log      *logging.Logger
}

// Deps bundles every collaborator New needs; absent fields are allowed
// where a tool's dependency is optional (e.g. Metrics).
type Deps struct {
	Config    Config
	Search    Searcher
	Fetch     Fetcher
	Registry  RegistryClient
	Repo      RepoClient
	Image     ImageClient
	Status    StatusClient
	Docs      DocDiscoverer
	Compare   Comparator
	Changelog ChangelogEngine
	Usage     UsageTracker
	Metrics   Metrics
	Log       *logging.Logger
}

// New constructs an Orchestrator from Deps.
func New(d Deps) *Orchestrator {
	log := d.Log
	if log == nil {
		log = logging.Default()
	}
	cfg := d.Config
	if cfg.MaxResponseChars <= 0 {
		cfg.MaxResponseChars = 8000
	}
	return &Orchestrator{
		cfg: cfg, search: d.Search, fetch: d.Fetch, registry: d.Registry,
		repo: d.Repo, image: d.Image, status: d.Status, docs: d.Docs,
		compare: d.Compare, changelog: d.Changelog, usage: d.Usage,
		metrics: d.Metrics, log: log.With("component", "orchestrator"),
	}
}

// handlerFunc decodes raw, validates it (including the mandatory
// `reasoning` field), runs the tool, and returns the reasoning string
// (for the UsageEvent) plus the response body.
type handlerFunc func(ctx context.Context, o *Orchestrator, raw json.RawMessage) (reasoning string, body string, err error)

var toolTable = map[string]handlerFunc{
	"web_search":            handleWebSearch,
	"search_examples":       handleSearchExamples,
	"search_images":         handleSearchImages,
	"crawl_url":             handleCrawlURL,
	"package_info":          handlePackageInfo,
	"package_search":        handlePackageSearch,
	"github_repo":           handleGithubRepo,
	"translate_error":       handleTranslateError,
	"api_docs":              handleAPIDocs,
	"extract_data":          handleExtractData,
	"compare_tech":          handleCompareTech,
	"get_changelog":         handleGetChangelog,
	"check_service_status":  handleCheckServiceStatus,
}

// Invoke runs the dispatch contract (spec §4.1 step 1-7) for one tool call.
// It never returns a Go error for handler-level failures: those are
// folded into the returned body as a human-readable failure string, with
// success=false recorded in the UsageEvent. A non-nil error return is
// reserved for "toolName not in the catalog", which the transport adapter
// is expected to treat as a protocol-level error rather than a tool result.
func (o *Orchestrator) Invoke(ctx context.Context, toolName string, rawParams json.RawMessage) (string, error) {
	handler, ok := toolTable[toolName]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", toolName)
	}

	start := time.Now()
	reasoning, body, err := o.runHandler(ctx, handler, rawParams)
	elapsedMs := time.Since(start).Milliseconds()

	success := err == nil
	errKind := ""
	errMessage := ""
	if err != nil {
		errKind = string(apperr.KindOf(err))
		errMessage = err.Error()
		body = humanReadableFailure(toolName, err)
	}

	clamped := textutil.Clamp(body, o.cfg.MaxResponseChars)

	if o.metrics != nil {
		o.metrics.Observe(toolName, time.Since(start).Seconds(), success, errKind)
	}

	if o.usage != nil {
		event := model.UsageEvent{
			Tool:              toolName,
			Reasoning:         reasoning,
			Parameters:        decodeParamsForLogging(rawParams),
			ResponseTimeMs:    elapsedMs,
			Success:           success,
			ErrorMessage:      errMessage,
			ResponseSizeBytes: len([]byte(clamped)),
		}
		if trackErr := o.usage.Track(event); trackErr != nil {
			o.log.Warn("usage tracker failed to persist event", "tool", toolName, "error", trackErr)
		}
	}

	return clamped, nil
}

// runHandler invokes handler under a panic guard, per spec §4.1's
// "handler exceptions never propagate to the transport" rule.
func (o *Orchestrator) runHandler(ctx context.Context, handler handlerFunc, raw json.RawMessage) (reasoning, body string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperr.Newf(apperr.Internal, "handler panicked: %v", r)
		}
	}()
	return handler(ctx, o, raw)
}

func decodeParamsForLogging(raw json.RawMessage) map[string]any {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	delete(m, "reasoning")
	return m
}

func humanReadableFailure(toolName string, err error) string {
	switch apperr.KindOf(err) {
	case apperr.InputInvalid:
		return fmt.Sprintf("Invalid parameters for %s: %s", toolName, err.Error())
	case apperr.NotFound:
		return err.Error()
	case apperr.UpstreamTimeout:
		return fmt.Sprintf("The upstream service for %s timed out. Please try again.", toolName)
	case apperr.UpstreamForbidden:
		return fmt.Sprintf("Access to the upstream service for %s was refused (check credentials/rate limits).", toolName)
	case apperr.UpstreamMalformed:
		return fmt.Sprintf("The upstream service for %s returned an unexpected response.", toolName)
	case apperr.RateLimited:
		return fmt.Sprintf("The upstream service for %s is rate-limiting requests. Please try again later.", toolName)
	case apperr.SizeExceeded:
		return fmt.Sprintf("The response for %s exceeded the allowed size.", toolName)
	case apperr.UpstreamUnavailable:
		return fmt.Sprintf("The upstream service for %s is currently unavailable.", toolName)
	default:
		return fmt.Sprintf("%s failed: %s", toolName, err.Error())
	}
}

