// Package image implements the Image Client: a thin wrapper over the
// Pixabay stock-image search API backing the search_images tool.
package image

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// DefaultTimeout is the per-call deadline spec §5 assigns to image search.
const DefaultTimeout = 10 * time.Second

const apiBaseURL = "https://pixabay.com/api/"

// Params are the query parameters accepted by Search.
type Params struct {
	Query       string
	ImageType   string // all, photo, illustration, vector
	Orientation string // all, horizontal, vertical
	MaxResults  int
}

// Client queries the Pixabay stock-image API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	log        *logging.Logger
	baseURL    string
}

// New constructs a Client. An empty apiKey is valid — Search then returns
// the "not configured" sentinel error rather than calling upstream.
func New(apiKey string, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Default()
	}
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        log.With("component", "image"),
		baseURL:    apiBaseURL,
	}
}

type pixabayResponse struct {
	Hits []struct {
		Tags          string `json:"tags"`
		ImageWidth    int    `json:"imageWidth"`
		ImageHeight   int    `json:"imageHeight"`
		Views         int    `json:"views"`
		Downloads     int    `json:"downloads"`
		Likes         int    `json:"likes"`
		User          string `json:"user"`
		PreviewURL    string `json:"previewURL"`
		LargeImageURL string `json:"largeImageURL"`
		FullHDURL     string `json:"fullHDURL"`
	} `json:"hits"`
}

// ErrNotConfigured is returned when no Pixabay API key is configured.
var ErrNotConfigured = apperr.New(apperr.InputInvalid, "image search is not configured: set PIXABAY_API_KEY")

// Search queries Pixabay and returns up to p.MaxResults image results.
func (c *Client) Search(ctx context.Context, p Params) ([]model.ImageResult, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", p.Query)
	q.Set("safesearch", "true")
	if p.ImageType != "" && p.ImageType != "all" {
		q.Set("image_type", p.ImageType)
	}
	if p.Orientation != "" && p.Orientation != "all" {
		q.Set("orientation", p.Orientation)
	}
	max := p.MaxResults
	if max <= 0 {
		max = 10
	}
	q.Set("per_page", itoa(clampPerPage(max)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "building image search request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperr.Wrap(apperr.UpstreamTimeout, err, "image search timed out")
		}
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, err, "image search endpoint unreachable")
	}
	defer resp.Body.Close()
	c.log.Debug("image search complete", "status", resp.StatusCode, "elapsed", logging.Elapsed(start))

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apperr.New(apperr.RateLimited, "pixabay rate limited this request")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Newf(apperr.UpstreamUnavailable, "pixabay returned status %d", resp.StatusCode)
	}

	var parsed pixabayResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding pixabay response")
	}

	out := make([]model.ImageResult, 0, len(parsed.Hits))
	for i, h := range parsed.Hits {
		if i >= max {
			break
		}
		out = append(out, model.ImageResult{
			Tags:       splitTags(h.Tags),
			Width:      h.ImageWidth,
			Height:     h.ImageHeight,
			Views:      h.Views,
			Downloads:  h.Downloads,
			Likes:      h.Likes,
			User:       h.User,
			PreviewURL: h.PreviewURL,
			LargeURL:   h.LargeImageURL,
			FullHDURL:  h.FullHDURL,
		})
	}
	return out, nil
}

// clampPerPage enforces Pixabay's documented per_page range of 3-200.
func clampPerPage(n int) int {
	if n < 3 {
		return 3
	}
	if n > 200 {
		return 200
	}
	return n
}
