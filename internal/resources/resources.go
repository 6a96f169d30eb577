// Package resources implements the Resource Registry (spec §4.13): the four
// URI-templated documents the orchestrator exposes alongside its tool
// catalog, each resolving to a JSON document by delegating to the same
// clients the tool handlers use.
//
// Grounded on an orchestrator's request-routing style (a prefix/pattern
// table dispatching to a handler), generalized from HTTP path matching to URI
// template matching.
package resources

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/pkg/validation"
)

// RegistryClient is the narrow capability package:// needs.
type RegistryClient interface {
	GetPackageInfo(ctx context.Context, name string, reg model.Registry) (model.PackageInfo, error)
}

// RepoClient is the narrow capability github:// needs.
type RepoClient interface {
	GetRepoInfo(ctx context.Context, owner, repo string) (model.RepoInfo, error)
}

// StatusClient is the narrow capability status:// needs.
type StatusClient interface {
	GetStatus(ctx context.Context, service string) (model.ServiceStatus, error)
}

// ChangelogEngine is the narrow capability changelog:// needs.
type ChangelogEngine interface {
	Build(ctx context.Context, pkgName string, reg model.Registry, maxReleases int) (model.Changelog, error)
}

var (
	packageURI   = regexp.MustCompile(`^package://([^/]+)/(.+)$`)
	githubURI    = regexp.MustCompile(`^github://(.+)$`)
	statusURI    = regexp.MustCompile(`^status://(.+)$`)
	changelogURI = regexp.MustCompile(`^changelog://([^/]+)/(.+)$`)
)

// Templates lists the URI templates the registry advertises.
var Templates = []string{
	"package://{registry}/{name}",
	"github://{owner}/{repo}",
	"status://{service}",
	"changelog://{registry}/{package}",
}

// Registry resolves resource URIs to JSON documents.
type Registry struct {
	registry  RegistryClient
	repo      RepoClient
	status    StatusClient
	changelog ChangelogEngine
}

// New constructs a Registry from its collaborators.
func New(registry RegistryClient, repo RepoClient, status StatusClient, changelog ChangelogEngine) *Registry {
	return &Registry{registry: registry, repo: repo, status: status, changelog: changelog}
}

// Resolve matches uri against the known templates and returns its
// application/json body.
func (r *Registry) Resolve(ctx context.Context, uri string) ([]byte, error) {
	switch {
	case packageURI.MatchString(uri):
		m := packageURI.FindStringSubmatch(uri)
		return r.resolvePackage(ctx, m[1], m[2])
	case changelogURI.MatchString(uri):
		m := changelogURI.FindStringSubmatch(uri)
		return r.resolveChangelog(ctx, m[1], m[2])
	case githubURI.MatchString(uri):
		m := githubURI.FindStringSubmatch(uri)
		return r.resolveGithub(ctx, m[1])
	case statusURI.MatchString(uri):
		m := statusURI.FindStringSubmatch(uri)
		return r.resolveStatus(ctx, m[1])
	default:
		return nil, apperr.Newf(apperr.NotFound, "no resource template matches %q", uri)
	}
}

func (r *Registry) resolvePackage(ctx context.Context, registry, name string) ([]byte, error) {
	info, err := r.registry.GetPackageInfo(ctx, name, model.Registry(strings.ToLower(registry)))
	if err != nil {
		return nil, err
	}
	return marshal(info)
}

func (r *Registry) resolveGithub(ctx context.Context, ownerRepo string) ([]byte, error) {
	owner, repo, err := validation.ParseOwnerRepo(ownerRepo)
	if err != nil {
		return nil, apperr.Wrap(apperr.InputInvalid, err, "parsing github resource uri")
	}
	info, err := r.repo.GetRepoInfo(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return marshal(info)
}

func (r *Registry) resolveStatus(ctx context.Context, service string) ([]byte, error) {
	status, err := r.status.GetStatus(ctx, service)
	if err != nil {
		return nil, err
	}
	return marshal(status)
}

func (r *Registry) resolveChangelog(ctx context.Context, registry, pkg string) ([]byte, error) {
	changelog, err := r.changelog.Build(ctx, pkg, model.Registry(strings.ToLower(registry)), 10)
	if err != nil {
		return nil, err
	}
	return marshal(changelog)
}

func marshal(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "marshaling resource")
	}
	return body, nil
}
