package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trustable/internal/domain"
	"trustable/internal/tools"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dispatcher, err := tools.NewDispatcher(tools.DispatcherOptions{Logger: zap.NewNop()})
	require.NoError(t, err)
	return New(domain.ServerIdentity{Name: "trustable-test", Version: "0.1.0"}, dispatcher, zap.NewNop())
}

func TestServer_ListToolsOverMCP(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	_, session := connectClient(t, ctx, s.MCPServer())
	defer session.Close()

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	schemas := make(map[string]*jsonschema.Schema, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		require.NotEmpty(t, tool.Description)

		raw, err := json.Marshal(tool.InputSchema)
		require.NoError(t, err)
		var schema jsonschema.Schema
		require.NoError(t, json.Unmarshal(raw, &schema))
		schemas[tool.Name] = &schema
	}
	require.Equal(t, []string{
		"get_trustable_score",
		"estimate_ai_visibility",
		"get_geo_recommendations",
		"explain_trustable_score",
	}, names)

	require.Equal(t, []string{"brand"}, schemas["get_trustable_score"].Required)
	require.Empty(t, schemas["estimate_ai_visibility"].Required)
	require.Equal(t, "integer", schemas["estimate_ai_visibility"].Properties["platformCount"].Type)
	require.Empty(t, schemas["explain_trustable_score"].Properties)
}

func TestServer_CallToolOverMCP(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	_, session := connectClient(t, ctx, s.MCPServer())
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "estimate_ai_visibility",
		Arguments: map[string]any{
			"platformCount":        4,
			"hasWikidata":          true,
			"hasSchemaMarkup":      true,
			"hasComparisonContent": true,
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text := res.Content[0].(*mcp.TextContent).Text
	require.True(t, strings.HasPrefix(text, "{\n  \""), text)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &payload))
	require.EqualValues(t, 88, payload["estimatedTrustableScore"])
	require.Equal(t, "excellent", payload["rating"])
}

func TestServer_CallToolOverMCP_Errors(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	_, session := connectClient(t, ctx, s.MCPServer())
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_trustable_score",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, res.Content[0].(*mcp.TextContent).Text, "brand")

	_, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "nonexistent_tool",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "nonexistent_tool")
}

func TestServer_LibraryModeCallTool(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.CallTool(ctx, "get_trustable_score", json.RawMessage(`{"brand":"Acme"}`))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := ResultText(res)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &payload))
	require.Equal(t, "Acme", payload["brand"])
	require.Contains(t, payload, "estimatedScore")
	require.Nil(t, payload["estimatedScore"])

	_, err = s.CallTool(ctx, "nonexistent_tool", nil)
	require.True(t, errors.Is(err, domain.ErrUnknownTool))
	require.Contains(t, err.Error(), "nonexistent_tool")

	res, err = s.CallTool(ctx, "estimate_ai_visibility", json.RawMessage(`{"platformCount":"many"}`))
	require.NoError(t, err)
	require.True(t, res.IsError)
}

func TestServer_LibraryModeCanceled(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.CallTool(ctx, "explain_trustable_score", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestServer_ListToolsOrder(t *testing.T) {
	s := newTestServer(t)
	got := s.ListTools()
	require.Len(t, got, 4)
	require.Equal(t, domain.ToolNames(), []domain.ToolName{got[0].Name, got[1].Name, got[2].Name, got[3].Name})
	require.Equal(t, "trustable-test", s.Identity().Name)
}

func TestRender(t *testing.T) {
	res, err := Render(map[string]int{"score": 28})
	require.NoError(t, err)
	require.Equal(t, "{\n  \"score\": 28\n}", ResultText(res))
	require.Equal(t, map[string]int{"score": 28}, res.StructuredContent)

	_, err = Render(func() {})
	require.Error(t, err)
}

func TestErrorResult(t *testing.T) {
	res := ErrorResult(errors.New("boom"))
	require.True(t, res.IsError)
	require.Equal(t, "boom", ResultText(res))
	require.Empty(t, ResultText(nil))
}

func connectClient(t *testing.T, ctx context.Context, server *mcp.Server) (*mcp.Client, *mcp.ClientSession) {
	t.Helper()
	ct, st := mcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	return client, session
}
