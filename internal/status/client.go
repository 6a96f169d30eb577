// Package status implements the Status Client (spec §4.11): locating a
// service's status page via a curated alias table or pattern probing, then
// parsing its incident state via the Atlassian Statuspage.io JSON API, an
// HTML scrape, or a bare HEAD-request liveness fallback.
package status

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// DefaultTimeout is the per-call deadline spec §5 assigns to status checks.
const DefaultTimeout = 10 * time.Second

var fallbackPatterns = []string{
	"https://status.%s.com",
	"https://%s.statuspage.io",
	"https://%s.com/status",
	"https://status.%s.io",
	"https://health.%s.com",
}

// Client locates and parses service status pages.
type Client struct {
	httpClient *http.Client
	userAgent  string
	log        *logging.Logger
	overlay    map[string]string
}

// New constructs a Client. overlay supplements (and takes priority over)
// the built-in alias table with operator-configured entries (spec §4.7/
// §4.11's config overlay).
func New(userAgent string, overlay map[string]string, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  userAgent,
		log:        log.With("component", "status"),
		overlay:    overlay,
	}
}

// GetStatus resolves service to a status page URL, then checks it.
func (c *Client) GetStatus(ctx context.Context, service string) (model.ServiceStatus, error) {
	pageURL, err := c.resolveStatusPageURL(ctx, service)
	if err != nil {
		return model.ServiceStatus{}, err
	}

	result := model.ServiceStatus{
		Service:       service,
		StatusPageURL: pageURL,
		CheckedAt:     time.Now().UTC().Format(time.RFC3339),
		Status:        model.StatusUnknown,
	}

	if isStatuspageHost(pageURL) {
		if err := c.parseStatuspageIO(ctx, pageURL, &result); err == nil {
			return result, nil
		}
		c.log.Debug("statuspage.io parse failed, falling back to html", "service", service)
	}

	if err := c.parseHTML(ctx, pageURL, &result); err == nil {
		return result, nil
	}
	c.log.Debug("html parse failed, falling back to head check", "service", service)

	if err := c.headFallback(ctx, pageURL, &result); err != nil {
		return model.ServiceStatus{}, err
	}
	return result, nil
}

func (c *Client) resolveStatusPageURL(ctx context.Context, service string) (string, error) {
	if c.overlay != nil {
		if url, ok := c.overlay[normalizeAlias(service)]; ok {
			return url, nil
		}
	}
	if url := lookupKnownStatusPage(service); url != "" {
		return url, nil
	}

	slug := slugify(service)
	for _, pattern := range fallbackPatterns {
		candidate := sprintfPattern(pattern, slug)
		if c.headOK(ctx, candidate) {
			return candidate, nil
		}
	}
	return "", apperr.Newf(apperr.NotFound, "could not locate a status page for %q", service)
}

func (c *Client) headOK(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func isStatuspageHost(url string) bool {
	return strings.Contains(url, "statuspage.io") || strings.Contains(url, "status.atlassian.com")
}

type statuspageStatusDoc struct {
	Status struct {
		Indicator   string `json:"indicator"`
		Description string `json:"description"`
	} `json:"status"`
}

type statuspageIncidentsDoc struct {
	Incidents []struct {
		Name      string `json:"name"`
		Status    string `json:"status"`
		Impact    string `json:"impact"`
		CreatedAt string `json:"created_at"`
		UpdatedAt string `json:"updated_at"`
	} `json:"incidents"`
}

type statuspageComponentsDoc struct {
	Components []struct {
		Name string `json:"name"`
	} `json:"components"`
}

// parseStatuspageIO fills result from the Atlassian Statuspage.io JSON API.
func (c *Client) parseStatuspageIO(ctx context.Context, baseURL string, result *model.ServiceStatus) error {
	var statusDoc statuspageStatusDoc
	if err := c.getJSON(ctx, baseURL+"/api/v2/status.json", &statusDoc); err != nil {
		return err
	}
	result.Status = normalizeIndicator(statusDoc.Status.Indicator)

	var incidentsDoc statuspageIncidentsDoc
	if err := c.getJSON(ctx, baseURL+"/api/v2/incidents/unresolved.json", &incidentsDoc); err == nil {
		for _, inc := range incidentsDoc.Incidents {
			result.CurrentIncidents = append(result.CurrentIncidents, model.ServiceIncident{
				Title:     inc.Name,
				Status:    normalizeIncidentState(inc.Status),
				StartedAt: inc.CreatedAt,
				Impact:    normalizeImpact(inc.Impact),
			})
		}
	}

	var componentsDoc statuspageComponentsDoc
	if err := c.getJSON(ctx, baseURL+"/api/v2/components.json", &componentsDoc); err == nil {
		for _, comp := range componentsDoc.Components {
			result.Components = append(result.Components, comp.Name)
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "building status request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return apperr.Wrap(apperr.UpstreamTimeout, err, "status request timed out")
		}
		return apperr.Wrap(apperr.UpstreamUnavailable, err, "status endpoint unreachable")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apperr.Newf(apperr.UpstreamUnavailable, "status endpoint returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.UpstreamMalformed, err, "decoding status response")
	}
	return nil
}

// parseHTML scrapes the status page for common textual cues when no
// structured API is available.
func (c *Client) parseHTML(ctx context.Context, pageURL string, result *model.ServiceStatus) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "building status page request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.UpstreamUnavailable, err, "status page unreachable")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apperr.Newf(apperr.UpstreamUnavailable, "status page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return apperr.Wrap(apperr.UpstreamMalformed, err, "parsing status page html")
	}

	text := strings.ToLower(doc.Text())
	result.Status = normalizeFreeText(text)
	doc.Find("h2, h3, .incident-title, .component-name").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" && len(result.Components) < 50 {
			result.Components = append(result.Components, t)
		}
	})
	return nil
}

// headFallback treats a reachable 2xx page with no parseable content as
// evidence the service is at least up, per spec §4.11's strategy-of-last-
// resort.
func (c *Client) headFallback(ctx context.Context, pageURL string, result *model.ServiceStatus) error {
	if !c.headOK(ctx, pageURL) {
		return apperr.New(apperr.UpstreamUnavailable, "status page unreachable")
	}
	result.Status = model.StatusOperational
	return nil
}
