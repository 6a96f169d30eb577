package docdiscoverer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/search"
)

type fakeSearcher struct {
	hits []model.SearchHit
	err  error
}

func (f *fakeSearcher) Query(ctx context.Context, p search.Params) ([]model.SearchHit, error) {
	return f.hits, f.err
}

type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) FetchMarkdown(ctx context.Context, url string, maxChars int) (string, error) {
	page, ok := f.pages[url]
	if !ok {
		return "", errors.New("fetch failed")
	}
	return page, nil
}

func TestDiscoverHostKnownAlias(t *testing.T) {
	c := New("test-agent", &fakeSearcher{}, &fakeFetcher{}, nil, nil)
	url, err := c.DiscoverHost(context.Background(), "Stripe")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.stripe.com", url)
}

func TestDiscoverHostOverlayWins(t *testing.T) {
	c := New("test-agent", &fakeSearcher{}, &fakeFetcher{}, map[string]string{"stripe": "https://custom.example.com"}, nil)
	url, err := c.DiscoverHost(context.Background(), "Stripe")
	require.NoError(t, err)
	assert.Equal(t, "https://custom.example.com", url)
}

func TestDiscoverHostFallsBackToSearch(t *testing.T) {
	searcher := &fakeSearcher{hits: []model.SearchHit{
		{Title: "irrelevant", URL: "https://example.com/blog/post"},
		{Title: "docs", URL: "https://totallyunknownapi.example/developer/docs"},
	}}
	c := New("test-agent", searcher, &fakeFetcher{}, nil, nil)
	url, err := c.DiscoverHost(context.Background(), "TotallyUnknownAPI")
	require.NoError(t, err)
	assert.Equal(t, "https://totallyunknownapi.example/developer/docs", url)
}

func TestDiscoverHostNotFound(t *testing.T) {
	c := New("test-agent", &fakeSearcher{}, &fakeFetcher{}, nil, nil)
	_, err := c.DiscoverHost(context.Background(), "ZzzNoSuchThing")
	assert.Error(t, err)
}

func TestHeadOKAcceptsSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New("test-agent", &fakeSearcher{}, &fakeFetcher{}, nil, nil)
	candidates := []string{srv.URL + "/a", srv.URL + "/b"}
	assert.True(t, c.headOK(context.Background(), candidates[0]))
}

func TestDomainRankPrefersComOverIO(t *testing.T) {
	assert.Less(t, domainRank("https://docs.foo.com"), domainRank("https://docs.foo.io"))
	assert.Less(t, domainRank("https://foo.dev"), domainRank("https://docs.foo.io"))
}

func TestCrawlTopicSkipsFailedFetches(t *testing.T) {
	searcher := &fakeSearcher{hits: []model.SearchHit{
		{Title: "a", URL: "https://docs.example.com/a"},
		{Title: "b", URL: "https://docs.example.com/b"},
	}}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://docs.example.com/a": "# Page A",
	}}
	c := New("test-agent", searcher, fetcher, nil, nil)
	pages, err := c.CrawlTopic(context.Background(), "https://docs.example.com", "widgets", 5)
	require.NoError(t, err)
	assert.Equal(t, "# Page A", pages["https://docs.example.com/a"])
	assert.NotContains(t, pages, "https://docs.example.com/b")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "stripe", slugify("Stripe API"))
	assert.Equal(t, "openai", slugify("OpenAI"))
}

func TestLookupKnownDocsHost(t *testing.T) {
	assert.Equal(t, "https://docs.github.com", lookupKnownDocsHost("GitHub"))
	assert.Equal(t, "", lookupKnownDocsHost("nonexistent-thing"))
}
