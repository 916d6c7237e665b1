// Package mcpserver exposes the runtime bridge to Model-Context-Protocol
// clients over stdio.
//
// Tools stay generic: the runtime's command set is an open, opaque
// namespace, so the server offers a status probe, a raw command
// passthrough, and a runtime resource listing rather than modeling
// individual commands. The runtime's API documentation is published as
// supex://docs/ resources.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/supexhq/supex-go/internal/conn"
	"github.com/supexhq/supex-go/internal/docs"
)

// docsURIPrefix addresses documentation resources.
const docsURIPrefix = "supex://docs/"

// Config wires the server's collaborators.
type Config struct {
	Name    string
	Version string
	Logger  *slog.Logger

	// Registry supplies the shared runtime connection.
	Registry *conn.Registry

	// ConnOptions configures connections created through the registry.
	// The Agent identity should distinguish MCP traffic (e.g. "mcp").
	ConnOptions conn.Options

	// Docs serves documentation resources. Optional.
	Docs *docs.Store
}

// Server bridges MCP tool calls to runtime commands.
type Server struct {
	mcpServer *mcp.Server
	log       *slog.Logger
	registry  *conn.Registry
	connOpts  conn.Options
	docs      *docs.Store
}

// New creates the MCP server and registers its tools and resources.
func New(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}

	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}

	if cfg.Registry == nil {
		return nil, fmt.Errorf("connection registry is required")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: cfg.Name, Version: cfg.Version}, nil),
		log:       log.With("component", "mcpserver"),
		registry:  cfg.Registry,
		connOpts:  cfg.ConnOptions,
		docs:      cfg.Docs,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}

	s.registerResources()

	return s, nil
}

// Run serves MCP traffic on the given transport until ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

func (s *Server) connection() *conn.Connection {
	return s.registry.Get(s.connOpts)
}

// StatusInput is empty; the status tool takes no arguments.
type StatusInput struct{}

// SendCommandInput invokes an arbitrary runtime command.
type SendCommandInput struct {
	Method string         `json:"method" jsonschema:"the runtime command name to invoke"`
	Params map[string]any `json:"params,omitempty" jsonschema:"optional parameters for the command"`
}

// ListResourcesInput is empty; the listing tool takes no arguments.
type ListResourcesInput struct{}

func (s *Server) registerTools() error {
	if err := registerTool(s, "status",
		"Check whether the Supex runtime is connected and responding",
		s.handleStatus); err != nil {
		return err
	}

	if err := registerTool(s, "send_command",
		"Send a raw command to the Supex runtime and return its result",
		s.handleSendCommand); err != nil {
		return err
	}

	return registerTool(s, "list_runtime_resources",
		"List the resources exposed by the Supex runtime",
		s.handleListResources)
}

// registerTool infers the input schema from In and adds the tool.
func registerTool[In any](s *Server, name, description string, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, any, error)) error {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", name, err)
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
	}, handler)

	return nil
}

func (s *Server) handleStatus(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, any, error) {
	result, err := s.connection().SendCommand(ctx, "ping", nil, nil)
	if err != nil {
		return textResult(jsonText(map[string]any{
			"status":  "disconnected",
			"error":   err.Error(),
			"message": "Make sure the Supex runtime is running",
		})), nil, nil
	}

	version, _ := result["version"].(string)

	return textResult(jsonText(map[string]any{
		"status":  "connected",
		"version": version,
		"message": "Supex runtime is connected and responding",
	})), nil, nil
}

func (s *Server) handleSendCommand(ctx context.Context, _ *mcp.CallToolRequest, in SendCommandInput) (*mcp.CallToolResult, any, error) {
	if in.Method == "" {
		return errorResult("method is required"), nil, nil
	}

	s.log.Debug("Forwarding command to runtime", "method", in.Method)

	result, err := s.connection().SendCommand(ctx, in.Method, in.Params, nil)
	if err != nil {
		// Bridge failures are tool results, not protocol errors: the MCP
		// session stays usable while the runtime is down.
		return errorResult(err.Error()), nil, nil
	}

	return textResult(jsonText(result)), nil, nil
}

func (s *Server) handleListResources(ctx context.Context, _ *mcp.CallToolRequest, _ ListResourcesInput) (*mcp.CallToolResult, any, error) {
	result, err := s.connection().SendCommand(ctx, "resources/list", nil, nil)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	return textResult(jsonText(result)), nil, nil
}

func (s *Server) registerResources() {
	if s.docs == nil {
		return
	}

	s.mcpServer.AddResource(&mcp.Resource{
		URI:      docsURIPrefix + "index",
		Name:     "Runtime API documentation index",
		MIMEType: "text/markdown",
	}, s.handleDocsResource)

	s.mcpServer.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: docsURIPrefix + "{+path}",
		Name:        "Runtime API class documentation",
		MIMEType:    "text/markdown",
	}, s.handleDocsResource)
}

func (s *Server) handleDocsResource(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI

	path := strings.TrimPrefix(uri, docsURIPrefix)

	var (
		content string
		err     error
	)

	if path == "index" {
		content, err = s.docs.LoadIndex()
	} else {
		content, err = s.docs.Load(path)
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     content,
		}},
	}, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}

func jsonText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(data)
}
