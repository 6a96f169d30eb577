package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
)

type fakeRegistryClient struct{ info model.PackageInfo }

func (f *fakeRegistryClient) GetPackageInfo(ctx context.Context, name string, reg model.Registry) (model.PackageInfo, error) {
	return f.info, nil
}

type fakeRepoClient struct{ info model.RepoInfo }

func (f *fakeRepoClient) GetRepoInfo(ctx context.Context, owner, repo string) (model.RepoInfo, error) {
	return f.info, nil
}

type fakeStatusClient struct{ status model.ServiceStatus }

func (f *fakeStatusClient) GetStatus(ctx context.Context, service string) (model.ServiceStatus, error) {
	return f.status, nil
}

type fakeChangelogEngine struct{ changelog model.Changelog }

func (f *fakeChangelogEngine) Build(ctx context.Context, pkgName string, reg model.Registry, maxReleases int) (model.Changelog, error) {
	return f.changelog, nil
}

func TestResolvePackage(t *testing.T) {
	r := New(&fakeRegistryClient{info: model.PackageInfo{Name: "left-pad"}}, nil, nil, nil)
	body, err := r.Resolve(context.Background(), "package://npm/left-pad")
	require.NoError(t, err)
	assert.Contains(t, string(body), "left-pad")
}

func TestResolveGithub(t *testing.T) {
	r := New(nil, &fakeRepoClient{info: model.RepoInfo{FullName: "golang/go"}}, nil, nil)
	body, err := r.Resolve(context.Background(), "github://golang/go")
	require.NoError(t, err)
	assert.Contains(t, string(body), "golang/go")
}

func TestResolveStatus(t *testing.T) {
	r := New(nil, nil, &fakeStatusClient{status: model.ServiceStatus{Service: "github"}}, nil)
	body, err := r.Resolve(context.Background(), "status://github")
	require.NoError(t, err)
	assert.Contains(t, string(body), "github")
}

func TestResolveChangelog(t *testing.T) {
	r := New(nil, nil, nil, &fakeChangelogEngine{changelog: model.Changelog{Package: "react"}})
	body, err := r.Resolve(context.Background(), "changelog://npm/react")
	require.NoError(t, err)
	assert.Contains(t, string(body), "react")
}

func TestResolveUnknownURI(t *testing.T) {
	r := New(nil, nil, nil, nil)
	_, err := r.Resolve(context.Background(), "bogus://thing")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
