package repo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
)

func TestGetRepoInfoBasic(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/golang/go", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"full_name":"golang/go","description":"The Go programming language","stargazers_count":100,"forks_count":10,"watchers_count":5,"open_issues_count":3,"language":"Go","license":{"name":"BSD-3-Clause"},"updated_at":"2020-01-01T00:00:00Z","topics":["go"],"homepage":"https://go.dev"}`))
	})
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_count":7}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, "", "test-agent", nil)
	info, err := c.GetRepoInfo(context.Background(), "golang", "go")
	require.NoError(t, err)
	assert.Equal(t, "golang/go", info.FullName)
	assert.Equal(t, 100, info.Stars)
	assert.Equal(t, "BSD-3-Clause", info.License)
	require.NotNil(t, info.OpenPRs)
	assert.Equal(t, 7, *info.OpenPRs)
	assert.Contains(t, info.LastUpdated, "ago")
}

func TestGetRepoInfoFollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/old/name", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/repos/new/name")
		w.WriteHeader(http.StatusMovedPermanently)
	})
	mux.HandleFunc("/repos/new/name", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"full_name":"new/name","stargazers_count":1,"updated_at":"2020-01-01T00:00:00Z"}`))
	})
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, "", "test-agent", nil)
	info, err := c.GetRepoInfo(context.Background(), "old", "name")
	require.NoError(t, err)
	assert.Equal(t, "new/name", info.FullName)
	assert.Nil(t, info.OpenPRs)
}

func TestGetRepoInfoNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "", "test-agent", nil)
	_, err := c.GetRepoInfo(context.Background(), "a", "b")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestGetRecentCommitsCapsAtMax(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`[{"sha":"abc","commit":{"message":"fix bug","author":{"name":"alice","date":"2020-01-01T00:00:00Z"}}}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "test-agent", nil)
	commits, err := c.GetRecentCommits(context.Background(), "a", "b", 999)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "abc", commits[0].SHA)
	assert.Equal(t, "alice", commits[0].Author)
}

func TestGetReleases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"tag_name":"v1.0.0","body":"- fix: bug\n- breaking: removed X","published_at":"2020-01-01T00:00:00Z"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "test-agent", nil)
	releases, err := c.GetReleases(context.Background(), "a", "b", 0)
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, "v1.0.0", releases[0].TagName)
}

func TestSearchCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"full_name":"psf/requests","stargazers_count":50000,"description":"HTTP library"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", "test-agent", nil)
	hits, err := c.SearchCode(context.Background(), "http language:python", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "psf", hits[0].Owner)
	assert.Equal(t, "requests", hits[0].Repo)
}

func TestSplitOwnerRepo(t *testing.T) {
	owner, repo, ok := splitOwnerRepo("a/b")
	require.True(t, ok)
	assert.Equal(t, "a", owner)
	assert.Equal(t, "b", repo)

	_, _, ok = splitOwnerRepo("invalid")
	assert.False(t, ok)
}
