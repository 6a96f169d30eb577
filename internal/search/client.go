// Package search implements the Search Client (spec §4.2): a thin HTTP
// client over a local meta-search endpoint (SearXNG-compatible JSON API).
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// DefaultTimeout is the per-call deadline spec §5 assigns to search.
const DefaultTimeout = 10 * time.Second

// Params are the query parameters accepted by Query.
type Params struct {
	Query      string
	Category   string
	MaxResults int
	TimeRange  string // "", "day", "week", "month", "year", "all"
}

// Client issues meta-search queries against a SearXNG-compatible backend.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *logging.Logger
}

// New constructs a Client. The underlying http.Client is shared and
// immutable after construction, per spec §5's shared-resource policy.
func New(baseURL, userAgent string, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Default()
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        log.With("component", "search"),
	}
}

type searxngResponse struct {
	Results []searxngResult `json:"results"`
}

type searxngResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Engine  string  `json:"engine"`
	Score   float64 `json:"score"`
}

// Query issues the search and returns up to p.MaxResults hits, preserving
// upstream ranking order.
func (c *Client) Query(ctx context.Context, p Params) ([]model.SearchHit, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "invalid search base url")
	}
	q := u.Query()
	q.Set("q", p.Query)
	q.Set("format", "json")
	if p.Category != "" {
		q.Set("categories", p.Category)
	}
	if p.TimeRange != "" && p.TimeRange != "all" {
		q.Set("time_range", p.TimeRange)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "building search request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperr.Wrap(apperr.UpstreamTimeout, err, "search request timed out")
		}
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, err, "search endpoint unreachable")
	}
	defer resp.Body.Close()
	c.log.Debug("search request complete", "status", resp.StatusCode, "elapsed", logging.Elapsed(start))

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apperr.New(apperr.RateLimited, "search backend rate limited this request")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Newf(apperr.UpstreamUnavailable, "search backend returned status %d", resp.StatusCode)
	}

	var parsed searxngResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding search response")
	}
	if parsed.Results == nil {
		return nil, apperr.New(apperr.UpstreamMalformed, "search response missing results array")
	}

	max := p.MaxResults
	if max <= 0 {
		max = 5
	}
	hits := make([]model.SearchHit, 0, max)
	for i, r := range parsed.Results {
		if i >= max {
			break
		}
		hits = append(hits, model.SearchHit{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
			Engine:  r.Engine,
			Score:   r.Score,
		})
	}
	return hits, nil
}

// FormatHits renders hits as the numbered text the web_search tool handler
// returns to the caller.
func FormatHits(hits []model.SearchHit) string {
	if len(hits) == 0 {
		return "No results found."
	}
	out := ""
	for i, h := range hits {
		out += fmt.Sprintf("%d. %s\n   %s\n", i+1, h.Title, h.URL)
		if h.Engine != "" {
			out += "   engine: " + h.Engine + "\n"
		}
		if h.Snippet != "" {
			out += "   " + h.Snippet + "\n"
		}
	}
	return out
}

// HostLabel derives the "[GitHub] / [Stack Overflow] / [Article]" source
// tag search_examples attaches to each hit, from the hit's URL host.
func HostLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "[Article]"
	}
	switch {
	case isOrSubdomain(u.Host, "github.com"), isOrSubdomain(u.Host, "gist.github.com"):
		return "[GitHub]"
	case isOrSubdomain(u.Host, "stackoverflow.com"):
		return "[Stack Overflow]"
	default:
		return "[Article]"
	}
}

func isOrSubdomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
