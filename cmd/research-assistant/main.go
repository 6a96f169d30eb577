// Command research-assistant starts the developer research assistant MCP
// server: it wires every upstream client and pipeline, the orchestrator,
// the resource and prompt registries, and the stdio transport, then blocks
// until the host closes the connection or the process receives a signal.
//
// Bootstrap follows an env-driven main with an HTTP server lifecycle,
// adapted here to an MCP stdio lifecycle.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jinterlante1206/research-assistant/internal/changelog"
	"github.com/jinterlante1206/research-assistant/internal/comparator"
	"github.com/jinterlante1206/research-assistant/internal/config"
	"github.com/jinterlante1206/research-assistant/internal/docdiscoverer"
	"github.com/jinterlante1206/research-assistant/internal/fetch"
	"github.com/jinterlante1206/research-assistant/internal/image"
	"github.com/jinterlante1206/research-assistant/internal/observability"
	"github.com/jinterlante1206/research-assistant/internal/orchestrator"
	"github.com/jinterlante1206/research-assistant/internal/registry"
	"github.com/jinterlante1206/research-assistant/internal/repo"
	"github.com/jinterlante1206/research-assistant/internal/resources"
	"github.com/jinterlante1206/research-assistant/internal/search"
	"github.com/jinterlante1206/research-assistant/internal/status"
	"github.com/jinterlante1206/research-assistant/internal/transport/mcpserver"
	"github.com/jinterlante1206/research-assistant/internal/usage"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

const (
	serverName    = "research-assistant"
	serverVersion = "0.1.0"
)

func main() {
	log := logging.New(logging.Config{
		Level:   logging.ParseLevel(os.Getenv("LOG_LEVEL")),
		Service: serverName,
	})
	defer log.Close()

	cfg := config.Load()

	fetchClient := fetch.New(cfg.UserAgent, log)
	defer fetchClient.Close()

	searchClient := search.New(cfg.SearxngBaseURL, cfg.UserAgent, log)
	repoClient := repo.New("https://api.github.com", cfg.GitHubToken, cfg.UserAgent, log)
	registryClient := registry.New(cfg.UserAgent, repoClient, log)
	imageClient := image.New(cfg.PixabayAPIKey, log)
	statusClient := status.New(cfg.UserAgent, cfg.Overlay.StatusPages, log)
	docsClient := docdiscoverer.New(cfg.UserAgent, searchClient, fetchClient, cfg.Overlay.DocHosts, log)
	comparatorClient := comparator.New(registryClient, repoClient, searchClient, log)
	changelogEngine := changelog.New(registryClient, repoClient, log)

	usageTracker := usage.New(cfg.UsageLogPath, log)

	var metrics *observability.ToolMetrics
	if cfg.MetricsAddr != "" {
		metrics = observability.NewToolMetrics()
	}

	orch := orchestrator.New(orchestrator.Deps{
		Config:    orchestrator.Config{MaxResponseChars: cfg.MaxResponseChars},
		Search:    searchClient,
		Fetch:     fetchClient,
		Registry:  registryClient,
		Repo:      repoClient,
		Image:     imageClient,
		Status:    statusClient,
		Docs:      docsClient,
		Compare:   comparatorClient,
		Changelog: changelogEngine,
		Usage:     usageTracker,
		Metrics:   metricsOrNil(metrics),
		Log:       log,
	})

	resourceRegistry := resources.New(registryClient, repoClient, statusClient, changelogEngine)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	observability.Serve(ctx, cfg.MetricsAddr, log)

	srv := mcpserver.New(serverName, serverVersion, orch, resourceRegistry, log)
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		log.Error("mcp server exited", "error", err)
		os.Exit(1)
	}
}

// metricsOrNil returns a nil orchestrator.Metrics when m is nil, avoiding a
// typed-nil interface (a *ToolMetrics(nil) wrapped in an interface is not
// itself nil, which would defeat the orchestrator's `if o.metrics != nil` check).
func metricsOrNil(m *observability.ToolMetrics) orchestrator.Metrics {
	if m == nil {
		return nil
	}
	return m
}
