package comparator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/search"
)

type fakeRegistry struct {
	info map[string]model.PackageInfo
}

func (f *fakeRegistry) GetPackageInfo(ctx context.Context, name string, registry model.Registry) (model.PackageInfo, error) {
	if info, ok := f.info[name]; ok {
		return info, nil
	}
	return model.PackageInfo{}, apperr.New(apperr.NotFound, "not found")
}

type fakeRepoSearcher struct {
	hits map[string][]model.CodeSearchHit
}

func (f *fakeRepoSearcher) SearchCode(ctx context.Context, query string, maxResults int) ([]model.CodeSearchHit, error) {
	return f.hits[query], nil
}

type fakeSearcher struct{}

func (f *fakeSearcher) Query(ctx context.Context, p search.Params) ([]model.SearchHit, error) {
	return []model.SearchHit{
		{Title: "t1", URL: "https://example.com/1", Snippet: "React has excellent performance in most benchmarks. It is also popular."},
	}, nil
}

func TestCompareBasic(t *testing.T) {
	registry := &fakeRegistry{info: map[string]model.PackageInfo{
		"react": {Name: "react", Description: "A JS library for UIs"},
	}}
	repos := &fakeRepoSearcher{hits: map[string][]model.CodeSearchHit{
		"react": {{Owner: "facebook", Repo: "react", Stars: 200000}},
		"vue":   {{Owner: "vuejs", Repo: "core", Stars: 40000}},
	}}
	c := New(registry, repos, &fakeSearcher{}, nil)
	result, err := c.Compare(context.Background(), []string{"react", "vue"}, model.CategoryFramework, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFramework, result.Category)
	assert.Contains(t, result.Aspects, "performance")
	assert.Equal(t, "React has excellent performance in most benchmarks.", result.Aspects["performance"]["react"])
	assert.NotEmpty(t, result.Sources)
}

func TestCompareMissingRegistryDoesNotFail(t *testing.T) {
	registry := &fakeRegistry{info: map[string]model.PackageInfo{}}
	c := New(registry, &fakeRepoSearcher{}, &fakeSearcher{}, nil)
	result, err := c.Compare(context.Background(), []string{"zzz-unknown", "yyy-unknown"}, model.CategoryTool, nil, 3)
	require.NoError(t, err)
	assert.Contains(t, result.Summary, "zzz-unknown")
	assert.Contains(t, result.Summary, "yyy-unknown")
}

func TestInferCategoryFromLanguageHint(t *testing.T) {
	assert.Equal(t, model.CategoryDatabase, inferCategory([]string{"postgresql", "mongodb"}))
	assert.Equal(t, model.CategoryLibrary, inferCategory([]string{"some-random-thing"}))
}

func TestAggregateFillsNotFoundSentinel(t *testing.T) {
	result := aggregate([]string{"a"}, model.CategoryTool, []string{"performance"}, []*techResult{nil})
	assert.Equal(t, NotFoundSentinel, result.Aspects["performance"]["a"])
	assert.Equal(t, NotFoundSentinel, result.Summary["a"])
}
