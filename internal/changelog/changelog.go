// Package changelog implements the Changelog Engine (spec §4.10): resolving
// a package's repository, fetching its recent releases, and classifying
// each release body line-by-line into breaking/feature/fix buckets to
// produce an upgrade-difficulty recommendation.
//
// Grounded on AleutianLocal's policy_engine line-classification pass
// (reading a document line-by-line and bucketing by keyword match),
// adapted here from policy rule matching to release-note classification.
package changelog

import (
	"context"
	"regexp"
	"strings"

	"github.com/jinterlante1206/research-assistant/internal/apperr"
	"github.com/jinterlante1206/research-assistant/internal/model"
	"github.com/jinterlante1206/research-assistant/internal/repo"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
	"github.com/jinterlante1206/research-assistant/pkg/validation"
)

var (
	breakingMarkers = []string{"breaking change", "breaking:", "breaking", "removed", "deprecated", "incompatible", "migration required", "must upgrade", "⚠️", "🚨"}
	featureMarkers  = []string{"new:", "added:", "feature:", "✨", "🎉", "feat:"}
	fixMarkers      = []string{"fix:", "fixed:", "bugfix:", "bug fix:", "🐛", "patch:"}
)

var bulletPrefix = regexp.MustCompile(`^[\s]*[-*•]+\s*|^[\s]*\[[A-Za-z]+\]\s*`)

// RegistryLookup is the narrow capability the engine needs from
// internal/registry to resolve a package's repository URL.
type RegistryLookup interface {
	GetPackageInfo(ctx context.Context, name string, registry model.Registry) (model.PackageInfo, error)
}

// ReleaseFetcher is the narrow capability the engine needs from internal/repo.
type ReleaseFetcher interface {
	GetReleases(ctx context.Context, owner, repoName string, n int) ([]repo.ReleaseDoc, error)
}

// Engine builds changelogs.
type Engine struct {
	registry RegistryLookup
	repos    ReleaseFetcher
	log      *logging.Logger
}

// New constructs an Engine.
func New(registry RegistryLookup, repos ReleaseFetcher, log *logging.Logger) *Engine {
	if log == nil {
		log = logging.Default()
	}
	return &Engine{registry: registry, repos: repos, log: log.With("component", "changelog")}
}

// Build resolves pkgName's repository in registryName, fetches up to
// maxReleases recent releases, and classifies each into the Changelog shape.
func (e *Engine) Build(ctx context.Context, pkgName string, registryName model.Registry, maxReleases int) (model.Changelog, error) {
	info, err := e.registry.GetPackageInfo(ctx, pkgName, registryName)
	if err != nil {
		return model.Changelog{}, err
	}
	if info.Repository == "" {
		return model.Changelog{}, apperr.New(apperr.NotFound, "Could not find repository for package")
	}

	owner, repoName, err := validation.ParseOwnerRepo(info.Repository)
	if err != nil {
		return model.Changelog{}, apperr.Wrap(apperr.NotFound, err, "Could not find repository for package")
	}

	docs, err := e.repos.GetReleases(ctx, owner, repoName, maxReleases)
	if err != nil {
		return model.Changelog{}, err
	}

	releases := make([]model.Release, 0, len(docs))
	breakingTotal := 0
	for _, doc := range docs {
		release := classifyRelease(doc)
		releases = append(releases, release)
		breakingTotal += len(release.BreakingChanges)
	}

	difficulty := difficultyFor(breakingTotal)
	summary := model.ChangelogSummary{
		TotalReleases:  len(releases),
		BreakingCount:  breakingTotal,
		Difficulty:     difficulty,
		Recommendation: recommendationFor(difficulty),
	}

	return model.Changelog{
		Package:    pkgName,
		Registry:   registryName,
		Repository: info.Repository,
		Releases:   releases,
		Summary:    summary,
	}, nil
}

func classifyRelease(doc repo.ReleaseDoc) model.Release {
	release := model.Release{
		Version: firstNonEmpty(doc.TagName, doc.Name),
		Date:    doc.PublishedAt,
		Author:  doc.Author.Login,
		URL:     doc.HTMLURL,
	}

	for _, line := range strings.Split(doc.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		clean := stripBulletPrefix(trimmed)

		switch {
		case containsAny(lower, breakingMarkers):
			release.BreakingChanges = append(release.BreakingChanges, clean)
		case containsAny(lower, featureMarkers):
			release.NewFeatures = append(release.NewFeatures, clean)
		case containsAny(lower, fixMarkers):
			release.BugFixes = append(release.BugFixes, clean)
		}
	}
	return release
}

func stripBulletPrefix(line string) string {
	return strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func difficultyFor(breakingCount int) model.UpgradeDifficulty {
	switch {
	case breakingCount == 0:
		return model.DifficultyLow
	case breakingCount <= 2:
		return model.DifficultyMedium
	default:
		return model.DifficultyHigh
	}
}

func recommendationFor(difficulty model.UpgradeDifficulty) string {
	switch difficulty {
	case model.DifficultyLow:
		return "Safe to upgrade directly; no breaking changes detected across the reviewed releases."
	case model.DifficultyMedium:
		return "Review the breaking changes below before upgrading; a few incompatible changes were introduced."
	case model.DifficultyHigh:
		return "Plan a staged upgrade and test thoroughly; multiple breaking changes were introduced across the reviewed releases."
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
