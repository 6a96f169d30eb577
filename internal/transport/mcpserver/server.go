// Package mcpserver is the Transport Adapter (spec §4.13/§6): it advertises
// the tool/resource/prompt catalog over the MCP stdio protocol and
// delegates every call to the transport-agnostic Orchestrator, Resource
// Registry, and Prompt Registry. It holds no business logic of its own —
// only request/response translation.
//
// Grounded on a BrowserNERD-style MCP wiring (registerTool + wrapTool
// closures around a narrow Tool interface, NewMCPServer with explicit
// capability flags, NewStdioServer for the transport loop).
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	mcpsdk "github.com/mark3labs/mcp-go/server"

	"github.com/jinterlante1206/research-assistant/internal/orchestrator"
	"github.com/jinterlante1206/research-assistant/internal/prompts"
	"github.com/jinterlante1206/research-assistant/internal/resources"
	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// Orchestrator is the narrow capability this adapter needs from
// internal/orchestrator.
type Orchestrator interface {
	Invoke(ctx context.Context, toolName string, rawParams json.RawMessage) (string, error)
}

// Server wires the orchestrator, resource registry, and prompt registry
// into an MCP stdio server.
type Server struct {
	orch      Orchestrator
	resources *resources.Registry
	mcp       *mcpsdk.MCPServer
	log       *logging.Logger
}

// New constructs a Server and registers its full tool/resource/prompt
// catalog. name and version identify the server to the connecting host.
func New(name, version string, orch Orchestrator, resourceRegistry *resources.Registry, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Default()
	}
	mcpSrv := mcpsdk.NewMCPServer(
		name, version,
		mcpsdk.WithToolCapabilities(true),
		mcpsdk.WithResourceCapabilities(true, false),
		mcpsdk.WithPromptCapabilities(true),
		mcpsdk.WithRecovery(),
	)

	s := &Server{
		orch:      orch,
		resources: resourceRegistry,
		mcp:       mcpSrv,
		log:       log.With("component", "mcpserver"),
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// Serve runs the stdio transport loop until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, stdin *os.File, stdout *os.File) error {
	stdio := mcpsdk.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, stdin, stdout)
}

func (s *Server) registerResources() {
	for _, template := range resources.Templates {
		tmpl := template
		s.mcp.AddResourceTemplate(
			mcp.NewResourceTemplate(tmpl, tmpl, mcp.WithTemplateMIMEType("application/json")),
			s.wrapResource(),
		)
	}
}

func (s *Server) wrapResource() mcpsdk.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		body, err := s.resources.Resolve(ctx, request.Params.URI)
		if err != nil {
			return nil, fmt.Errorf("resolving resource %q: %w", request.Params.URI, err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(body),
			},
		}, nil
	}
}

func (s *Server) registerPrompts() {
	for _, name := range prompts.Names() {
		promptName := name
		s.mcp.AddPrompt(mcp.NewPrompt(promptName), s.wrapPrompt(promptName))
	}
}

func (s *Server) wrapPrompt(name string) mcpsdk.PromptHandlerFunc {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		rendered, err := prompts.Render(name, request.Params.Arguments)
		if err != nil {
			return nil, fmt.Errorf("rendering prompt %q: %w", name, err)
		}
		messages := make([]mcp.PromptMessage, 0, len(rendered))
		for _, m := range rendered {
			messages = append(messages, mcp.PromptMessage{
				Role:    mcp.Role(m.Role),
				Content: mcp.NewTextContent(m.Text),
			})
		}
		return &mcp.GetPromptResult{Messages: messages}, nil
	}
}
