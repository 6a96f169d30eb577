package status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/model"
)

func TestGetStatusStatuspageIO(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/status.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":{"indicator":"minor","description":"Degraded"}}`))
	})
	mux.HandleFunc("/api/v2/incidents/unresolved.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"incidents":[{"name":"API latency","status":"monitoring","impact":"minor","created_at":"2024-01-01T00:00:00Z"}]}`))
	})
	mux.HandleFunc("/api/v2/components.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"components":[{"name":"API"}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	overlay := map[string]string{"acme": srv.URL + "/dummy.statuspage.io"}
	c := New("test-agent", overlay, nil)
	// Call parseStatuspageIO directly against the test server; GetStatus
	// takes this path only for statuspage.io hosts.
	result := model.ServiceStatus{}
	err := c.parseStatuspageIO(context.Background(), srv.URL, &result)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDegradedPerformance, result.Status)
	require.Len(t, result.CurrentIncidents, 1)
	assert.Equal(t, "API latency", result.CurrentIncidents[0].Title)
	assert.Equal(t, model.IncidentMonitoring, result.CurrentIncidents[0].Status)
	require.Len(t, result.Components, 1)
}

func TestResolveStatusPageURLOverlayWins(t *testing.T) {
	c := New("test-agent", map[string]string{"acme": "https://status.acme.example"}, nil)
	url, err := c.resolveStatusPageURL(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "https://status.acme.example", url)
}

func TestResolveStatusPageURLKnownAlias(t *testing.T) {
	c := New("test-agent", nil, nil)
	url, err := c.resolveStatusPageURL(context.Background(), "GitHub")
	require.NoError(t, err)
	assert.Equal(t, "https://www.githubstatus.com", url)
}

func TestResolveStatusPageURLNotFound(t *testing.T) {
	c := New("test-agent", nil, nil)
	_, err := c.resolveStatusPageURL(context.Background(), "totally-nonexistent-service-xyz")
	require.Error(t, err)
}

func TestParseHTMLFreeText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h2>All Systems Operational</h2></body></html>`))
	}))
	defer srv.Close()

	c := New("test-agent", nil, nil)
	result := model.ServiceStatus{}
	err := c.parseHTML(context.Background(), srv.URL, &result)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOperational, result.Status)
}

func TestNormalizeIndicator(t *testing.T) {
	assert.Equal(t, model.StatusOperational, normalizeIndicator("none"))
	assert.Equal(t, model.StatusMajorOutage, normalizeIndicator("critical"))
	assert.Equal(t, model.StatusUnknown, normalizeIndicator("bogus"))
}

func TestNormalizeFreeTextPicksMostSevere(t *testing.T) {
	text := strings.ToLower("Partial Outage reported, also Degraded Performance on some components")
	assert.Equal(t, model.StatusPartialOutage, normalizeFreeText(text))
}

func TestStatusEmoji(t *testing.T) {
	assert.Equal(t, "🟢", StatusEmoji(model.StatusOperational))
	assert.Equal(t, "⚪", StatusEmoji(model.StatusUnknown))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "acmeinc", slugify("Acme Inc"))
}
