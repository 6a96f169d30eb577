// Package fetch implements the Fetcher (spec §4.3): rendering a URL to
// readable markdown via a headless browser, or returning raw HTML, both
// under a caller-supplied size ceiling.
//
// Grounded on a data_fetcher HTTPClient-interface pattern for dependency
// injection in tests, and on codenerd's internal/browser session manager
// for the go-rod launch/connect/navigate idiom.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"golang.org/x/net/html"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// DefaultTimeout is the per-call deadline spec §5 assigns to fetch/crawl.
const DefaultTimeout = 30 * time.Second

// MaxRawBytes is the hard body-size ceiling enforced before the raw-HTML
// max_chars truncation even applies, protecting memory on pathological
// upstreams.
const MaxRawBytes = 5 << 20 // 5MB

// HTTPClient is the subset of *http.Client the raw-fetch path needs,
// narrow enough to fake in tests without standing up a browser.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
	multiSpacePattern   = regexp.MustCompile(`[ \t]{2,}`)
)

// Client renders pages to markdown (via a lazily-launched headless
// browser) or returns raw HTML (via a direct HTTP client).
type Client struct {
	httpClient HTTPClient
	userAgent  string
	log        *logging.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// New constructs a Client. The browser is launched lazily on first
// fetchMarkdown call, not at construction time.
func New(userAgent string, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  userAgent,
		log:        log.With("component", "fetch"),
	}
}

// Close releases the headless browser, if one was launched.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser != nil {
		_ = c.browser.Close()
		c.browser = nil
	}
}

func (c *Client) ensureBrowser() (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser != nil {
		if _, err := c.browser.Version(); err == nil {
			return c.browser, nil
		}
		_ = c.browser.Close()
		c.browser = nil
	}
	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, err, "launching headless browser")
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, apperr.Wrap(apperr.UpstreamUnavailable, err, "connecting to headless browser")
	}
	c.browser = browser
	return browser, nil
}

// FetchMarkdown renders url in a headless browser and converts the
// resulting DOM to a readable markdown string, truncated to maxChars.
func (c *Client) FetchMarkdown(ctx context.Context, rawURL string, maxChars int) (string, error) {
	browser, err := c.ensureBrowser()
	if err != nil {
		return "", err
	}

	deadline := DefaultTimeout
	if d, ok := ctx.Deadline(); ok {
		if remaining := time.Until(d); remaining > 0 {
			deadline = remaining
		}
	}

	page, err := browser.Timeout(deadline).Page(rod.PageWithInfo{})
	if err != nil {
		return "", apperr.Wrap(apperr.UpstreamUnavailable, err, "opening browser page")
	}
	defer page.Close()

	start := time.Now()
	if err := page.Navigate(rawURL); err != nil {
		if strings.Contains(err.Error(), "context deadline exceeded") {
			return "", apperr.Wrap(apperr.UpstreamTimeout, err, "navigation timed out")
		}
		return "", apperr.Wrap(apperr.UpstreamUnavailable, err, "navigating to url")
	}
	if err := page.WaitLoad(); err != nil {
		c.log.Debug("wait load returned error, proceeding with partial content", "url", rawURL, "error", err)
	}

	rawHTML, err := page.HTML()
	if err != nil {
		return "", apperr.Wrap(apperr.UpstreamUnavailable, err, "reading rendered html")
	}
	c.log.Debug("page rendered", "url", rawURL, "elapsed", logging.Elapsed(start))

	md, err := htmlToMarkdown(rawHTML)
	if err != nil {
		return "", apperr.Wrap(apperr.UpstreamMalformed, err, "converting rendered html to markdown")
	}
	return clampFetch(md, maxChars), nil
}

// FetchRaw issues a direct HTTP GET and returns the response body verbatim
// (capped at MaxRawBytes before the maxChars truncation), following
// redirects via the standard library's default redirect policy.
func (c *Client) FetchRaw(ctx context.Context, rawURL string, maxChars int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, err, "building fetch request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", apperr.Wrap(apperr.UpstreamTimeout, err, "fetch request timed out")
		}
		return "", apperr.Wrap(apperr.UpstreamUnavailable, err, "fetch request failed")
	}
	defer resp.Body.Close()
	c.log.Debug("raw fetch complete", "status", resp.StatusCode, "elapsed", logging.Elapsed(start))

	if resp.StatusCode == http.StatusForbidden {
		return "", apperr.New(apperr.UpstreamForbidden, "upstream returned 403 Forbidden")
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperr.Newf(apperr.UpstreamUnavailable, "fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxRawBytes))
	if err != nil {
		return "", apperr.Wrap(apperr.UpstreamUnavailable, err, "reading fetch response body")
	}
	return clampFetch(string(body), maxChars), nil
}

func clampFetch(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}
	return s[:maxChars] + "\n\n[...truncated...]"
}

// htmlToMarkdown converts an HTML document to a simplified markdown
// rendering, preserving headings, emphasis, links, and list structure
// while dropping script/style/nav noise.
func htmlToMarkdown(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	extractText(doc, &sb, 0)
	return cleanMarkdown(sb.String()), nil
}

func extractText(n *html.Node, sb *strings.Builder, depth int) {
	if depth > 50 {
		return
	}
	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "iframe", "svg", "nav", "footer", "header":
			return
		case "title":
			sb.WriteString("# ")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				extractText(c, sb, depth+1)
			}
			sb.WriteString("\n\n")
			return
		case "h1":
			sb.WriteString("\n\n# ")
		case "h2":
			sb.WriteString("\n\n## ")
		case "h3":
			sb.WriteString("\n\n### ")
		case "h4", "h5", "h6":
			sb.WriteString("\n\n#### ")
		case "p", "div":
			sb.WriteString("\n\n")
		case "br":
			sb.WriteString("\n")
		case "li":
			sb.WriteString("\n- ")
		case "code":
			sb.WriteString("`")
		case "pre":
			sb.WriteString("\n\n```\n")
		case "strong", "b":
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
		case "a":
			if href := getAttr(n, "href"); href != "" && !strings.HasPrefix(href, "#") {
				sb.WriteString("[")
			}
		case "img":
			if alt := getAttr(n, "alt"); alt != "" {
				sb.WriteString(fmt.Sprintf("[Image: %s]", alt))
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, sb, depth+1)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			sb.WriteString("\n\n")
		case "code":
			sb.WriteString("`")
		case "pre":
			sb.WriteString("\n```\n\n")
		case "strong", "b":
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
		case "a":
			if href := getAttr(n, "href"); href != "" && !strings.HasPrefix(href, "#") {
				// Drop the separator space the last text node left inside the link text.
				text := strings.TrimRight(sb.String(), " ")
				sb.Reset()
				sb.WriteString(text)
				sb.WriteString(fmt.Sprintf("](%s) ", href))
			}
		}
	}
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func cleanMarkdown(s string) string {
	s = multiNewlinePattern.ReplaceAllString(s, "\n\n")
	s = multiSpacePattern.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
