package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpsdk "github.com/mark3labs/mcp-go/server"
)

// toolSpec names one catalog entry plus its raw JSON input schema, so the
// stable contract in spec §4.1's table lives in one place. Grounded on a
// BrowserNERD-style MCP wiring's NewToolWithRawSchema + registerTool
// pattern rather than a fluent schema builder.
type toolSpec struct {
	name        string
	description string
	schema      map[string]any
}

func reasoningProperty() map[string]any {
	return map[string]any{"type": "string", "description": "why this call is being made"}
}

func objectSchema(required []string, properties map[string]any) map[string]any {
	properties["reasoning"] = reasoningProperty()
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   append([]string{"reasoning"}, required...),
	}
}

var toolCatalog = []toolSpec{
	{"web_search", "Search the web via the meta-search backend.", objectSchema(
		[]string{"query"},
		map[string]any{
			"query":       map[string]any{"type": "string"},
			"category":    map[string]any{"type": "string", "enum": []string{"general", "it", "news", "science", "videos", "images", "files"}},
			"max_results": map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
		},
	)},
	{"search_examples", "Search for code or article examples on a topic.", objectSchema(
		[]string{"query"},
		map[string]any{
			"query":        map[string]any{"type": "string"},
			"content_type": map[string]any{"type": "string", "enum": []string{"code", "articles", "both"}},
			"time_range":   map[string]any{"type": "string", "enum": []string{"day", "week", "month", "year", "all"}},
			"max_results":  map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
		},
	)},
	{"search_images", "Search a stock-image API.", objectSchema(
		[]string{"query"},
		map[string]any{
			"query":       map[string]any{"type": "string"},
			"image_type":  map[string]any{"type": "string", "enum": []string{"all", "photo", "illustration", "vector"}},
			"orientation": map[string]any{"type": "string", "enum": []string{"all", "horizontal", "vertical"}},
			"max_results": map[string]any{"type": "integer", "minimum": 1, "maximum": 20},
		},
	)},
	{"crawl_url", "Fetch a URL and render it as markdown.", objectSchema(
		[]string{"url"},
		map[string]any{
			"url":       map[string]any{"type": "string"},
			"max_chars": map[string]any{"type": "integer", "minimum": 1, "maximum": 50000},
		},
	)},
	{"package_info", "Look up a package's registry metadata.", objectSchema(
		[]string{"name", "registry"},
		map[string]any{
			"name":     map[string]any{"type": "string"},
			"registry": map[string]any{"type": "string", "enum": []string{"npm", "pypi", "crates", "go"}},
		},
	)},
	{"package_search", "Search a package registry.", objectSchema(
		[]string{"query", "registry"},
		map[string]any{
			"query":       map[string]any{"type": "string"},
			"registry":    map[string]any{"type": "string", "enum": []string{"npm", "pypi", "crates", "go"}},
			"max_results": map[string]any{"type": "integer", "minimum": 1, "maximum": 20},
		},
	)},
	{"github_repo", "Fetch repository metadata and recent commits.", objectSchema(
		[]string{"repo"},
		map[string]any{
			"repo":            map[string]any{"type": "string"},
			"include_commits": map[string]any{"type": "boolean"},
		},
	)},
	{"translate_error", "Classify an error message and find related fixes.", objectSchema(
		[]string{"error_message"},
		map[string]any{
			"error_message": map[string]any{"type": "string"},
			"language":      map[string]any{"type": "string"},
			"framework":     map[string]any{"type": "string"},
			"max_results":   map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
		},
	)},
	{"api_docs", "Discover and mine a third-party API's documentation.", objectSchema(
		[]string{"api_name", "topic"},
		map[string]any{
			"api_name":    map[string]any{"type": "string"},
			"topic":       map[string]any{"type": "string"},
			"max_results": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
		},
	)},
	{"extract_data", "Extract tables, lists, fields, or JSON-LD from a page.", objectSchema(
		[]string{"url"},
		map[string]any{
			"url":          map[string]any{"type": "string"},
			"extract_type": map[string]any{"type": "string", "enum": []string{"table", "list", "fields", "json-ld", "auto"}},
			"selectors":    map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
			"max_items":    map[string]any{"type": "integer", "minimum": 1, "maximum": 500},
		},
	)},
	{"compare_tech", "Compare two to five technologies across shared aspects.", objectSchema(
		[]string{"technologies"},
		map[string]any{
			"technologies":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2, "maxItems": 5},
			"category":             map[string]any{"type": "string", "enum": []string{"framework", "library", "database", "language", "tool", "auto"}},
			"aspects":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"max_results_per_tech": map[string]any{"type": "integer"},
		},
	)},
	{"get_changelog", "Retrieve and classify a package's recent releases.", objectSchema(
		[]string{"package"},
		map[string]any{
			"package":      map[string]any{"type": "string"},
			"registry":     map[string]any{"type": "string", "enum": []string{"npm", "pypi", "crates", "go", "auto"}},
			"from_version": map[string]any{"type": "string"},
			"to_version":   map[string]any{"type": "string"},
			"max_releases": map[string]any{"type": "integer", "minimum": 1, "maximum": 50},
		},
	)},
	{"check_service_status", "Check whether a third-party service is degraded.", objectSchema(
		[]string{"service"},
		map[string]any{
			"service":         map[string]any{"type": "string"},
			"include_history": map[string]any{"type": "boolean"},
			"days":            map[string]any{"type": "integer"},
		},
	)},
}

func (s *Server) registerTools() {
	for _, spec := range toolCatalog {
		schema, err := json.Marshal(spec.schema)
		if err != nil {
			schema = []byte(`{"type":"object"}`)
		}
		tool := mcp.NewToolWithRawSchema(spec.name, spec.description, schema)
		s.mcp.AddTool(tool, s.wrapTool(spec.name))
	}
}

func (s *Server) wrapTool(toolName string) mcpsdk.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("encoding arguments for %s: %w", toolName, err)
		}
		body, err := s.orch.Invoke(ctx, toolName, raw)
		if err != nil {
			// Unknown-tool errors only: the orchestrator folds every
			// handler-level failure into body with success=false already
			// recorded, so this path never doubles up on usage events.
			s.log.Warn("tool invocation rejected", "tool", toolName, "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(body), nil
	}
}
