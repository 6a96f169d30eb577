// Package registry implements the Registry Client (spec §4.4): package
// lookup across four distinct upstream protocols (NPM, PyPI, Crates, Go
// proxy), unified into a single PackageInfo record, plus package_search
// discovery that either hits a registry's native search endpoint or
// delegates to a repo host's code search.
//
// Grounded on a data_fetcher JSON-decode-over-HTTP idiom, generalized
// from one upstream (Yahoo Finance) to four.
package registry

import (
	"context"
	"net/http"
	"time"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// DefaultTimeout is the per-call deadline spec §5 assigns to registry calls.
const DefaultTimeout = 10 * time.Second

// CodeSearcher is the narrow repo-host search capability PyPI and Go
// package_search delegate to, implemented by internal/repo and injected
// here to avoid a registry↔repo import cycle.
type CodeSearcher interface {
	SearchCode(ctx context.Context, languageQualifier string, maxResults int) ([]model.CodeSearchHit, error)
}

// Client looks up and discovers packages across the four registries.
type Client struct {
	httpClient   *http.Client
	userAgent    string
	codeSearcher CodeSearcher
	log          *logging.Logger

	npmBaseURL    string
	pypiBaseURL   string
	cratesBaseURL string
	goproxyBaseURL string
}

// Option configures non-default base URLs, primarily for tests.
type Option func(*Client)

// WithBaseURLs overrides the four upstream base URLs.
func WithBaseURLs(npm, pypi, crates, goproxy string) Option {
	return func(c *Client) {
		if npm != "" {
			c.npmBaseURL = npm
		}
		if pypi != "" {
			c.pypiBaseURL = pypi
		}
		if crates != "" {
			c.cratesBaseURL = crates
		}
		if goproxy != "" {
			c.goproxyBaseURL = goproxy
		}
	}
}

// New constructs a Client. codeSearcher may be nil; PyPI/Go package_search
// then fails with UPSTREAM_UNAVAILABLE instead of delegating.
func New(userAgent string, codeSearcher CodeSearcher, log *logging.Logger, opts ...Option) *Client {
	if log == nil {
		log = logging.Default()
	}
	c := &Client{
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		userAgent:      userAgent,
		codeSearcher:   codeSearcher,
		log:            log.With("component", "registry"),
		npmBaseURL:     "https://registry.npmjs.org",
		pypiBaseURL:    "https://pypi.org",
		cratesBaseURL:  "https://crates.io",
		goproxyBaseURL: "https://proxy.golang.org",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetPackageInfo dispatches to the sub-protocol for registry.
func (c *Client) GetPackageInfo(ctx context.Context, name string, registry model.Registry) (model.PackageInfo, error) {
	switch registry {
	case model.RegistryNPM:
		return c.getNPMInfo(ctx, name)
	case model.RegistryPyPI:
		return c.getPyPIInfo(ctx, name)
	case model.RegistryCrates:
		return c.getCratesInfo(ctx, name)
	case model.RegistryGo:
		return c.getGoInfo(ctx, name)
	default:
		return model.PackageInfo{}, apperr.Newf(apperr.InputInvalid, "unknown registry %q", registry)
	}
}

// SearchPackages dispatches package_search to the sub-protocol for
// registry, using a native search endpoint for NPM/Crates and delegating
// to repo-host code search for PyPI/Go.
func (c *Client) SearchPackages(ctx context.Context, query string, registry model.Registry, maxResults int) ([]model.PackageInfo, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	switch registry {
	case model.RegistryNPM:
		return c.searchNPM(ctx, query, maxResults)
	case model.RegistryCrates:
		return c.searchCrates(ctx, query, maxResults)
	case model.RegistryPyPI:
		return c.searchViaCodeHost(ctx, query, "language:python", maxResults, func(h model.CodeSearchHit) model.PackageInfo {
			return model.PackageInfo{
				Name:        h.Repo,
				Registry:    model.RegistryPyPI,
				Description: h.Description,
				Repository:  "https://github.com/" + h.Owner + "/" + h.Repo,
			}
		})
	case model.RegistryGo:
		return c.searchViaCodeHost(ctx, query, "language:go", maxResults, func(h model.CodeSearchHit) model.PackageInfo {
			return model.PackageInfo{
				Name:        "github.com/" + h.Owner + "/" + h.Repo,
				Registry:    model.RegistryGo,
				Description: h.Description,
				Repository:  "https://github.com/" + h.Owner + "/" + h.Repo,
			}
		})
	default:
		return nil, apperr.Newf(apperr.InputInvalid, "unknown registry %q", registry)
	}
}

func (c *Client) searchViaCodeHost(ctx context.Context, query, languageQualifier string, maxResults int, toInfo func(model.CodeSearchHit) model.PackageInfo) ([]model.PackageInfo, error) {
	if c.codeSearcher == nil {
		return nil, apperr.New(apperr.UpstreamUnavailable, "repo-host code search is not configured")
	}
	hits, err := c.codeSearcher.SearchCode(ctx, query+" "+languageQualifier, maxResults)
	if err != nil {
		return nil, err
	}
	out := make([]model.PackageInfo, 0, len(hits))
	for _, h := range hits {
		out = append(out, toInfo(h))
	}
	return out, nil
}

func newRequest(ctx context.Context, url, userAgent string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "building registry request")
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func classifyHTTPError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return apperr.Wrap(apperr.UpstreamTimeout, err, "registry request timed out")
	}
	return apperr.Wrap(apperr.UpstreamUnavailable, err, "registry endpoint unreachable")
}

func statusToError(status int) error {
	switch status {
	case http.StatusNotFound:
		return apperr.New(apperr.NotFound, "package not found")
	case http.StatusTooManyRequests:
		return apperr.New(apperr.RateLimited, "registry rate limited this request")
	default:
		return apperr.Newf(apperr.UpstreamUnavailable, "registry returned status %d", status)
	}
}
