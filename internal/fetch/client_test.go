package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
)

func TestFetchRawSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	c := New("test-agent", nil)
	out, err := c.FetchRaw(context.Background(), srv.URL, 1000)
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}

func TestFetchRawTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	c := New("test-agent", nil)
	out, err := c.FetchRaw(context.Background(), srv.URL, 5)
	require.NoError(t, err)
	assert.Equal(t, "01234\n\n[...truncated...]", out)
}

func TestFetchRawForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New("test-agent", nil)
	_, err := c.FetchRaw(context.Background(), srv.URL, 1000)
	require.Error(t, err)
	assert.Equal(t, apperr.UpstreamForbidden, apperr.KindOf(err))
}

func TestFetchRawUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New("test-agent", nil)
	_, err := c.FetchRaw(context.Background(), srv.URL, 1000)
	require.Error(t, err)
	assert.Equal(t, apperr.UpstreamUnavailable, apperr.KindOf(err))
}

func TestHTMLToMarkdownHeadingsAndLinks(t *testing.T) {
	md, err := htmlToMarkdown(`<html><body><h1>Title</h1><p>Hello <a href="https://example.com">world</a></p></body></html>`)
	require.NoError(t, err)
	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "[world](https://example.com)")
}

func TestHTMLToMarkdownStripsScriptAndStyle(t *testing.T) {
	md, err := htmlToMarkdown(`<html><body><script>evil()</script><style>.x{}</style><p>keep me</p></body></html>`)
	require.NoError(t, err)
	assert.NotContains(t, md, "evil")
	assert.Contains(t, md, "keep me")
}

func TestCleanMarkdownCollapsesWhitespace(t *testing.T) {
	out := cleanMarkdown("a\n\n\n\nb   c")
	assert.Equal(t, "a\n\nb c", out)
}

func TestClampFetch(t *testing.T) {
	assert.Equal(t, "hi", clampFetch("hi", 10))
	assert.Equal(t, "ab\n\n[...truncated...]", clampFetch("abcdef", 2))
	assert.Equal(t, "abcdef", clampFetch("abcdef", 0))
}
