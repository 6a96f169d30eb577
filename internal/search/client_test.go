package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
)

func TestQuerySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"title":"A","url":"https://a.example/1","content":"snippet a","engine":"google","score":3.1},
			{"title":"B","url":"https://b.example/2","content":"snippet b","engine":"bing","score":2.0},
			{"title":"C","url":"https://c.example/3","content":"snippet c","engine":"ddg","score":1.0}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-agent", nil)
	hits, err := c.Query(context.Background(), Params{Query: "golang", MaxResults: 2})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "A", hits[0].Title)
	assert.Equal(t, "B", hits[1].Title)
}

func TestQueryMalformedMissingResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"other":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-agent", nil)
	_, err := c.Query(context.Background(), Params{Query: "golang"})
	require.Error(t, err)
	assert.Equal(t, apperr.UpstreamMalformed, apperr.KindOf(err))
}

func TestQueryUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-agent", nil)
	_, err := c.Query(context.Background(), Params{Query: "golang"})
	require.Error(t, err)
	assert.Equal(t, apperr.UpstreamUnavailable, apperr.KindOf(err))
}

func TestQueryRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-agent", nil)
	_, err := c.Query(context.Background(), Params{Query: "golang"})
	require.Error(t, err)
	assert.Equal(t, apperr.RateLimited, apperr.KindOf(err))
}

func TestFormatHitsEmpty(t *testing.T) {
	assert.Equal(t, "No results found.", FormatHits(nil))
}

func TestFormatHitsNonEmpty(t *testing.T) {
	out := FormatHits([]model.SearchHit{{Title: "A", URL: "https://a.example", Engine: "google", Snippet: "hi"}})
	assert.Contains(t, out, "1. A")
	assert.Contains(t, out, "https://a.example")
	assert.Contains(t, out, "engine: google")
	assert.Contains(t, out, "hi")
}

func TestHostLabel(t *testing.T) {
	assert.Equal(t, "[GitHub]", HostLabel("https://github.com/foo/bar"))
	assert.Equal(t, "[GitHub]", HostLabel("https://gist.github.com/abc"))
	assert.Equal(t, "[Stack Overflow]", HostLabel("https://stackoverflow.com/q/1"))
	assert.Equal(t, "[Article]", HostLabel("https://example.com/blog"))
	assert.Equal(t, "[Article]", HostLabel("not a url :://"))
}

func TestIsOrSubdomain(t *testing.T) {
	assert.True(t, isOrSubdomain("github.com", "github.com"))
	assert.True(t, isOrSubdomain("gist.github.com", "github.com"))
	assert.False(t, isOrSubdomain("notgithub.com", "github.com"))
}

func TestAugmentExamplesQuery(t *testing.T) {
	assert.Contains(t, AugmentExamplesQuery("react hooks", ContentCode), "site:github.com")
	assert.Contains(t, AugmentExamplesQuery("react hooks", ContentArticles), "tutorial")
	assert.Equal(t, "react hooks", AugmentExamplesQuery("react hooks", ContentBoth))
}
