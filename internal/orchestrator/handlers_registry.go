package orchestrator

import (
	"context"
	"encoding/json"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/pkg/validation"
)

func handlePackageInfo(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[PackageInfoParams](raw)
	if err != nil {
		return "", "", err
	}
	info, err := o.registry.GetPackageInfo(ctx, p.Name, model.Registry(p.Registry))
	if err != nil {
		return p.Reasoning, "", err
	}
	body, err := json.Marshal(info)
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.Internal, err, "marshaling package info")
	}
	return p.Reasoning, string(body), nil
}

func handlePackageSearch(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[PackageSearchParams](raw)
	if err != nil {
		return "", "", err
	}
	results, err := o.registry.SearchPackages(ctx, p.Query, model.Registry(p.Registry), orDefaultInt(p.MaxResults, 10))
	if err != nil {
		return p.Reasoning, "", err
	}
	body, err := json.Marshal(results)
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.Internal, err, "marshaling package search results")
	}
	return p.Reasoning, string(body), nil
}

func handleGithubRepo(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[GithubRepoParams](raw)
	if err != nil {
		return "", "", err
	}
	owner, repo, err := validation.ParseOwnerRepo(p.Repo)
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.InputInvalid, err, "parsing repo")
	}
	info, err := o.repo.GetRepoInfo(ctx, owner, repo)
	if err != nil {
		return p.Reasoning, "", err
	}
	includeCommits := p.IncludeCommits == nil || *p.IncludeCommits
	if includeCommits {
		commits, err := o.repo.GetRecentCommits(ctx, owner, repo, 10)
		if err == nil {
			info.RecentCommits = commits
		} else {
			o.log.Warn("failed to fetch recent commits", "repo", p.Repo, "error", err)
		}
	}
	body, err := json.Marshal(info)
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.Internal, err, "marshaling repo info")
	}
	return p.Reasoning, string(body), nil
}

func handleGetChangelog(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[GetChangelogParams](raw)
	if err != nil {
		return "", "", err
	}
	maxReleases := orDefaultInt(p.MaxReleases, 10)

	var changelog model.Changelog
	if p.Registry != "" && p.Registry != "auto" {
		changelog, err = o.changelog.Build(ctx, p.Package, model.Registry(p.Registry), maxReleases)
	} else {
		registries := []model.Registry{model.RegistryNPM, model.RegistryPyPI, model.RegistryCrates, model.RegistryGo}
		var lastErr error
		for _, reg := range registries {
			changelog, lastErr = o.changelog.Build(ctx, p.Package, reg, maxReleases)
			if lastErr == nil {
				err = nil
				break
			}
			err = lastErr
		}
	}
	if err != nil {
		return p.Reasoning, "", err
	}
	body, err := json.Marshal(changelog)
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.Internal, err, "marshaling changelog")
	}
	return p.Reasoning, string(body), nil
}

func handleCheckServiceStatus(ctx context.Context, o *Orchestrator, raw json.RawMessage) (string, string, error) {
	p, err := decodeParams[CheckServiceStatusParams](raw)
	if err != nil {
		return "", "", err
	}
	status, err := o.status.GetStatus(ctx, p.Service)
	if err != nil {
		return p.Reasoning, "", err
	}
	if !p.IncludeHistory {
		status.RecentIncidents = nil
	}
	body, err := json.Marshal(status)
	if err != nil {
		return p.Reasoning, "", apperr.Wrap(apperr.Internal, err, "marshaling service status")
	}
	return p.Reasoning, string(body), nil
}
