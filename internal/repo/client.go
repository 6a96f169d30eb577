// Package repo implements the Repo Client (spec §4.5): repository
// metadata, recent commits, and releases from a GitHub-shaped REST API,
// plus the stars-ranked code search PyPI/Go package discovery and the
// Comparator's repo guesser delegate to.
package repo

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/textutil"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// DefaultTimeout is the per-call deadline spec §5 assigns to repo calls.
const DefaultTimeout = 10 * time.Second

// MaxCommits and MaxReleases are the hard ceilings spec §4.5 assigns to
// getRecentCommits and getReleases.
const (
	MaxCommits  = 3
	MaxReleases = 50
)

// Client fetches repository metadata from a GitHub-compatible REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	log        *logging.Logger
}

// New constructs a Client. token may be empty for unauthenticated access
// (subject to the host's anonymous rate limit).
func New(baseURL, token, userAgent string, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Default()
	}
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
		token:      token,
		userAgent:  userAgent,
		log:        log.With("component", "repo"),
	}
}

type repoDoc struct {
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Watchers        int      `json:"watchers_count"`
	OpenIssues      int      `json:"open_issues_count"`
	Language        string   `json:"language"`
	License         *struct {
		Name string `json:"name"`
	} `json:"license"`
	UpdatedAt string   `json:"updated_at"`
	Topics    []string `json:"topics"`
	Homepage  string   `json:"homepage"`
}

type commitDoc struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

type searchCountDoc struct {
	TotalCount int `json:"total_count"`
}

// GetRepoInfo fetches repository metadata, following a single HTTP 301
// redirect (renamed/transferred repos) by retrying against the
// Location header.
func (c *Client) GetRepoInfo(ctx context.Context, owner, repo string) (model.RepoInfo, error) {
	doc, err := c.fetchRepoDoc(ctx, owner, repo)
	if err != nil {
		return model.RepoInfo{}, err
	}

	info := model.RepoInfo{
		FullName:    doc.FullName,
		Description: doc.Description,
		Stars:       doc.StargazersCount,
		Forks:       doc.ForksCount,
		Watchers:    doc.Watchers,
		OpenIssues:  doc.OpenIssues,
		Language:    doc.Language,
		LastUpdated: textutil.RelativeTime(parseGitHubTime(doc.UpdatedAt), time.Now()),
		Topics:      doc.Topics,
		Homepage:    doc.Homepage,
	}
	if doc.License != nil {
		info.License = doc.License.Name
	}
	if openPRs, err := c.countOpenPRs(ctx, owner, repo); err == nil {
		info.OpenPRs = &openPRs
	}
	return info, nil
}

func (c *Client) fetchRepoDoc(ctx context.Context, owner, repo string) (repoDoc, error) {
	resp, err := c.doGet(ctx, c.baseURL+"/repos/"+owner+"/"+repo)
	if err != nil {
		return repoDoc{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusMovedPermanently {
		location := resp.Header.Get("Location")
		if location == "" {
			return repoDoc{}, apperr.New(apperr.UpstreamMalformed, "redirect response missing Location header")
		}
		resp2, err := c.doGet(ctx, location)
		if err != nil {
			return repoDoc{}, err
		}
		defer resp2.Body.Close()
		return decodeRepoDoc(resp2)
	}
	return decodeRepoDoc(resp)
}

func decodeRepoDoc(resp *http.Response) (repoDoc, error) {
	if resp.StatusCode != http.StatusOK {
		return repoDoc{}, statusToError(resp.StatusCode)
	}
	var doc repoDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return repoDoc{}, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding repo doc")
	}
	return doc, nil
}

// GetRecentCommits returns up to n (capped at MaxCommits) recent commits.
func (c *Client) GetRecentCommits(ctx context.Context, owner, repo string, n int) ([]model.Commit, error) {
	if n <= 0 || n > MaxCommits {
		n = MaxCommits
	}
	url := c.baseURL + "/repos/" + owner + "/" + repo + "/commits?per_page=" + itoa(n)
	resp, err := c.doGet(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusToError(resp.StatusCode)
	}
	var docs []commitDoc
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding commits")
	}
	out := make([]model.Commit, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.Commit{
			SHA:     d.SHA,
			Message: d.Commit.Message,
			Author:  d.Commit.Author.Name,
			Date:    d.Commit.Author.Date,
		})
	}
	return out, nil
}

// ReleaseDoc is an opaque raw release record handed to the Changelog
// Engine (spec §4.5's "opaque release records").
type ReleaseDoc struct {
	TagName   string `json:"tag_name"`
	Name      string `json:"name"`
	Body      string `json:"body"`
	Author    struct {
		Login string `json:"login"`
	} `json:"author"`
	PublishedAt string `json:"published_at"`
	HTMLURL     string `json:"html_url"`
}

// GetReleases returns up to n (capped at MaxReleases) releases newest-first.
func (c *Client) GetReleases(ctx context.Context, owner, repo string, n int) ([]ReleaseDoc, error) {
	if n <= 0 || n > MaxReleases {
		n = MaxReleases
	}
	url := c.baseURL + "/repos/" + owner + "/" + repo + "/releases?per_page=" + itoa(n)
	resp, err := c.doGet(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusToError(resp.StatusCode)
	}
	var docs []ReleaseDoc
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding releases")
	}
	return docs, nil
}

func (c *Client) countOpenPRs(ctx context.Context, owner, repo string) (int, error) {
	q := "repo:" + owner + "/" + repo + " is:pr is:open"
	resp, err := c.doGet(ctx, c.baseURL+"/search/issues?q="+urlEscape(q))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, statusToError(resp.StatusCode)
	}
	var doc searchCountDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return 0, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding PR search count")
	}
	return doc.TotalCount, nil
}

// SearchCode implements registry.CodeSearcher: a stars-sorted repository
// search used to delegate PyPI/Go package discovery and the Comparator's
// repo guesser.
func (c *Client) SearchCode(ctx context.Context, query string, maxResults int) ([]model.CodeSearchHit, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	url := c.baseURL + "/search/repositories?q=" + urlEscape(query) + "&sort=stars&order=desc&per_page=" + itoa(maxResults)
	resp, err := c.doGet(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusToError(resp.StatusCode)
	}
	var doc struct {
		Items []struct {
			FullName        string `json:"full_name"`
			StargazersCount int    `json:"stargazers_count"`
			Description     string `json:"description"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamMalformed, err, "decoding repo search results")
	}
	out := make([]model.CodeSearchHit, 0, len(doc.Items))
	for _, item := range doc.Items {
		owner, r, ok := splitOwnerRepo(item.FullName)
		if !ok {
			continue
		}
		out = append(out, model.CodeSearchHit{
			Owner:       owner,
			Repo:        r,
			Stars:       item.StargazersCount,
			Description: item.Description,
		})
	}
	return out, nil
}

func (c *Client) doGet(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "building repo request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperr.Wrap(apperr.UpstreamTimeout, err, "repo request timed out")
		}
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, err, "repo endpoint unreachable")
	}
	c.log.Debug("repo request complete", "status", resp.StatusCode, "elapsed", logging.Elapsed(start))
	return resp, nil
}

func statusToError(status int) error {
	switch status {
	case http.StatusNotFound:
		return apperr.New(apperr.NotFound, "repository not found")
	case http.StatusForbidden:
		return apperr.New(apperr.UpstreamForbidden, "repo host returned 403 (rate limited or access denied)")
	case http.StatusTooManyRequests:
		return apperr.New(apperr.RateLimited, "repo host rate limited this request")
	default:
		return apperr.Newf(apperr.UpstreamUnavailable, "repo host returned status %d", status)
	}
}

func parseGitHubTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
