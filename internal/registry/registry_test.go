package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
)

func TestGetPackageInfoNPM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/left-pad":
			_, _ = w.Write([]byte(`{"name":"left-pad","description":"pad a string","dist-tags":{"latest":"1.3.0"},"time":{"1.3.0":"2017-01-01T00:00:00.000Z"},"repository":{"url":"git+https://github.com/stevemao/left-pad.git"},"homepage":"https://github.com/stevemao/left-pad"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New("test-agent", nil, nil, WithBaseURLs(srv.URL, "", "", ""))
	info, err := c.GetPackageInfo(context.Background(), "left-pad", model.RegistryNPM)
	require.NoError(t, err)
	assert.Equal(t, "left-pad", info.Name)
	assert.Equal(t, "1.3.0", info.Version)
	assert.Equal(t, "https://github.com/stevemao/left-pad", info.Repository)
}

func TestGetPackageInfoNPMNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New("test-agent", nil, nil, WithBaseURLs(srv.URL, "", "", ""))
	_, err := c.GetPackageInfo(context.Background(), "nope", model.RegistryNPM)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestGetPackageInfoPyPIProjectURLsNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"info":{"name":"requests","version":"2.31.0","summary":"HTTP for humans","license":"Apache-2.0","home_page":"https://requests.readthedocs.io","project_urls":null},"urls":[{"upload_time_iso_8601":"2023-05-22T00:00:00"}]}`))
	}))
	defer srv.Close()

	c := New("test-agent", nil, nil, WithBaseURLs("", srv.URL, "", ""))
	info, err := c.GetPackageInfo(context.Background(), "requests", model.RegistryPyPI)
	require.NoError(t, err)
	assert.Equal(t, "requests", info.Name)
	assert.Equal(t, "https://requests.readthedocs.io", info.Repository)
}

func TestGetPackageInfoPyPILicenseTruncated(t *testing.T) {
	longLicense := ""
	for i := 0; i < 200; i++ {
		longLicense += "x"
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"info":{"name":"foo","version":"1.0","license":"` + longLicense + `","project_urls":{"Source":"https://github.com/a/b"}},"urls":[]}`))
	}))
	defer srv.Close()

	c := New("test-agent", nil, nil, WithBaseURLs("", srv.URL, "", ""))
	info, err := c.GetPackageInfo(context.Background(), "foo", model.RegistryPyPI)
	require.NoError(t, err)
	assert.Len(t, info.License, 100)
	assert.Equal(t, "https://github.com/a/b", info.Repository)
}

func TestGetPackageInfoCrates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"crate":{"name":"serde","max_version":"1.0.195","downloads":500000000,"updated_at":"2024-01-01T00:00:00Z","repository":"https://github.com/serde-rs/serde","description":"serialization"}}`))
	}))
	defer srv.Close()

	c := New("test-agent", nil, nil, WithBaseURLs("", "", srv.URL, ""))
	info, err := c.GetPackageInfo(context.Background(), "serde", model.RegistryCrates)
	require.NoError(t, err)
	assert.Equal(t, "serde", info.Name)
	assert.Equal(t, "1.0.195", info.Version)
}

func TestGetPackageInfoGo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/github.com/pkg/errors/@latest":
			_, _ = w.Write([]byte(`{"Version":"v0.9.1","Time":"2020-01-14T19:47:31Z"}`))
		case r.URL.Path == "/github.com/pkg/errors/@v/v0.9.1.mod":
			_, _ = w.Write([]byte("module github.com/pkg/errors\n\ngo 1.13\n\nrequire (\n\tgithub.com/stretchr/testify v1.2.2\n)\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New("test-agent", nil, nil, WithBaseURLs("", "", "", srv.URL))
	info, err := c.GetPackageInfo(context.Background(), "github.com/pkg/errors", model.RegistryGo)
	require.NoError(t, err)
	assert.Equal(t, "v0.9.1", info.Version)
	require.NotNil(t, info.DependenciesCount)
	assert.Equal(t, 1, *info.DependenciesCount)
}

type fakeCodeSearcher struct {
	hits []model.CodeSearchHit
	err  error
}

func (f *fakeCodeSearcher) SearchCode(ctx context.Context, query string, maxResults int) ([]model.CodeSearchHit, error) {
	return f.hits, f.err
}

func TestSearchPackagesPyPIDelegatesToCodeSearch(t *testing.T) {
	searcher := &fakeCodeSearcher{hits: []model.CodeSearchHit{{Owner: "psf", Repo: "requests", Stars: 50000, Description: "HTTP library"}}}
	c := New("test-agent", searcher, nil)
	out, err := c.SearchPackages(context.Background(), "http client", model.RegistryPyPI, 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "requests", out[0].Name)
	assert.Equal(t, model.RegistryPyPI, out[0].Registry)
}

func TestSearchPackagesGoNoCodeSearcherConfigured(t *testing.T) {
	c := New("test-agent", nil, nil)
	_, err := c.SearchPackages(context.Background(), "logging", model.RegistryGo, 5)
	require.Error(t, err)
	assert.Equal(t, apperr.UpstreamUnavailable, apperr.KindOf(err))
}

func TestNormalizeRepoURL(t *testing.T) {
	assert.Equal(t, "https://github.com/a/b", normalizeRepoURL("git+https://github.com/a/b.git"))
}

func TestCountRequireLinesSingleLine(t *testing.T) {
	n := countRequireLines(strings.NewReader("module foo\n\nrequire bar v1.0.0\n"))
	assert.Equal(t, 1, n)
}
