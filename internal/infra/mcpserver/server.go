// Package mcpserver exposes the tool dispatcher over the Model Context
// Protocol using the official go-sdk.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"trustable/internal/domain"
	"trustable/internal/infra/telemetry"
	"trustable/internal/tools"
)

// Server registers the tool catalog on an mcp.Server. The same handlers back
// both the protocol surface and library-mode CallTool.
type Server struct {
	identity   domain.ServerIdentity
	dispatcher *tools.Dispatcher
	logger     *zap.Logger
	server     *mcp.Server
	handlers   map[domain.ToolName]mcp.ToolHandler
}

func New(identity domain.ServerIdentity, dispatcher *tools.Dispatcher, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if identity.Name == "" {
		identity.Name = domain.DefaultServerName
	}
	if identity.Version == "" {
		identity.Version = domain.DefaultServerVersion
	}

	s := &Server{
		identity:   identity,
		dispatcher: dispatcher,
		logger:     logger.Named("mcp"),
		server: mcp.NewServer(&mcp.Implementation{
			Name:    identity.Name,
			Version: identity.Version,
		}, &mcp.ServerOptions{
			HasTools: true,
		}),
		handlers: make(map[domain.ToolName]mcp.ToolHandler),
	}
	for _, desc := range dispatcher.Tools() {
		handler := s.toolHandler(desc.Name)
		s.handlers[desc.Name] = handler
		s.server.AddTool(&mcp.Tool{
			Name:        string(desc.Name),
			Description: desc.Description,
			InputSchema: tools.MustInputSchema(desc),
		}, handler)
	}
	s.server.AddReceivingMiddleware(catalogOrderMiddleware())
	return s
}

// MCPServer returns the underlying SDK server for transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

// Identity returns the name and version advertised to clients.
func (s *Server) Identity() domain.ServerIdentity {
	return s.identity
}

// ListTools returns the catalog in catalog order, the same order clients
// receive from tools/list.
func (s *Server) ListTools() []domain.ToolDescriptor {
	return s.dispatcher.Tools()
}

// CallTool invokes a tool in-process without JSON-RPC. Unknown names return
// an error wrapping domain.ErrUnknownTool; argument problems come back as an
// IsError result, as they would over the wire.
func (s *Server) CallTool(ctx context.Context, name string, args json.RawMessage) (*mcp.CallToolResult, error) {
	tool, ok := domain.ParseToolName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}
	handler, ok := s.handlers[tool]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}
	return handler(ctx, &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      name,
			Arguments: args,
		},
	})
}

// RunStdio serves MCP over stdin/stdout until ctx is canceled or the client
// disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info("mcp server starting",
		telemetry.EventField(telemetry.EventServeStart),
		telemetry.TransportField(string(domain.TransportStdio)),
	)
	err := s.server.Run(ctx, &mcp.StdioTransport{})
	s.logger.Info("mcp server stopped", telemetry.EventField(telemetry.EventServeStop))
	if err != nil && (errors.Is(err, context.Canceled) || ctx.Err() != nil) {
		return nil
	}
	return err
}

func (s *Server) toolHandler(name domain.ToolName) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, _ = telemetry.EnsureRequestMeta(ctx, "")

		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		result, err := s.dispatcher.Invoke(ctx, string(name), args)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return ErrorResult(err), nil
		}
		return Render(result)
	}
}

// catalogOrderMiddleware reorders tools/list results to catalog order. The
// SDK lists registered tools sorted by name.
func catalogOrderMiddleware() mcp.Middleware {
	rank := make(map[string]int, len(domain.ToolNames()))
	for i, name := range domain.ToolNames() {
		rank[string(name)] = i
	}
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			result, err := next(ctx, method, req)
			if err != nil || method != "tools/list" {
				return result, err
			}
			if listed, ok := result.(*mcp.ListToolsResult); ok && listed != nil {
				sort.SliceStable(listed.Tools, func(i, j int) bool {
					return toolRank(rank, listed.Tools[i]) < toolRank(rank, listed.Tools[j])
				})
			}
			return result, nil
		}
	}
}

func toolRank(rank map[string]int, tool *mcp.Tool) int {
	if tool == nil {
		return len(rank)
	}
	if r, ok := rank[tool.Name]; ok {
		return r
	}
	return len(rank)
}

// Render wraps a tool result as a single text block of two-space indented
// JSON, with the same value as structured content.
func Render(result any) (*mcp.CallToolResult, error) {
	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: result,
	}, nil
}

// ErrorResult reports a rejected call to the client as a tool error.
func ErrorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

// ResultText concatenates the text blocks of a result.
func ResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	var text string
	for _, content := range result.Content {
		if block, ok := content.(*mcp.TextContent); ok {
			text += block.Text
		}
	}
	return text
}
