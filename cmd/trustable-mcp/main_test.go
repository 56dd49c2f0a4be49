package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"trustable/internal/domain"
	"trustable/internal/scoring"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trustable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestToolsCmd_Formats(t *testing.T) {
	out, _, err := runCmd(t, "tools")
	require.NoError(t, err)
	require.Contains(t, out, "get_trustable_score")
	require.Contains(t, out, "- brand (string, required)")

	out, _, err = runCmd(t, "tools", "--format", "json")
	require.NoError(t, err)
	var asJSON struct {
		Tools []domain.ToolDescriptor `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &asJSON))
	require.Len(t, asJSON.Tools, 4)
	require.Equal(t, domain.ToolGetTrustableScore, asJSON.Tools[0].Name)

	out, _, err = runCmd(t, "tools", "--format", "yaml")
	require.NoError(t, err)
	var asYAML struct {
		Tools []domain.ToolDescriptor `yaml:"tools"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &asYAML))
	require.Len(t, asYAML.Tools, 4)
	require.Equal(t, domain.ToolExplainTrustableScore, asYAML.Tools[3].Name)

	_, _, err = runCmd(t, "tools", "--format", "xml")
	require.ErrorContains(t, err, `unsupported format "xml"`)
}

func TestCallCmd(t *testing.T) {
	out, _, err := runCmd(t, "call", "estimate_ai_visibility", "--args", `{"platformCount":4,"hasWikidata":true,"hasSchemaMarkup":true,"hasComparisonContent":true}`)
	require.NoError(t, err)
	var estimate map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &estimate))
	require.EqualValues(t, 88, estimate["estimatedTrustableScore"])
	require.Equal(t, "excellent", estimate["rating"])
	require.Contains(t, out, "\n  \"rating\"")

	out, _, err = runCmd(t, "call", "explain_trustable_score")
	require.NoError(t, err)
	require.Contains(t, out, `"range": "0-100"`)
}

func TestCallCmd_Errors(t *testing.T) {
	_, _, err := runCmd(t, "call", "nonexistent_tool")
	require.True(t, errors.Is(err, domain.ErrUnknownTool))
	require.ErrorContains(t, err, "nonexistent_tool")

	_, _, err = runCmd(t, "call", "get_trustable_score", "--args", "{}")
	var exitErr exitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.code)
	require.Contains(t, exitErr.message, "brand")

	_, _, err = runCmd(t, "call", "get_trustable_score", "--args", "{not json")
	require.ErrorContains(t, err, "--args must be valid JSON")
}

func TestEstimateCmd_Text(t *testing.T) {
	out, _, err := runCmd(t, "estimate")
	require.NoError(t, err)
	require.Contains(t, out, "Trustable Score: 28 (low)")
	require.Contains(t, out, "Limited visibility - rarely mentioned by AI")
	require.Regexp(t, `raw total\s+28`, out)
}

func TestEstimateCmd_JSON(t *testing.T) {
	out, _, err := runCmd(t, "estimate", "--platforms", "4", "--wikidata", "--schema", "--comparison", "--json")
	require.NoError(t, err)

	var report estimateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, 88, report.Score)
	require.Equal(t, "excellent", report.Rating)
	require.Equal(t, scoring.Breakdown{
		Base:              20,
		PlatformDiversity: 25,
		EntityRecognition: 10,
		Technical:         10,
		Content:           23,
	}, report.Breakdown)
	require.Equal(t, 88, report.RawScore)
	require.Equal(t, 12, report.Signals.ContentAge)
}

func TestValidateCmd(t *testing.T) {
	out, _, err := runCmd(t, "validate")
	require.NoError(t, err)
	require.Contains(t, out, "configuration valid (defaults)")

	good := writeConfigFile(t, "transport: streamable-http\nserver:\n  version: 2.1.0\n")
	out, _, err = runCmd(t, "--config", good, "validate")
	require.NoError(t, err)
	require.Contains(t, out, "transport=streamable-http")
	require.Contains(t, out, "@2.1.0")

	bad := writeConfigFile(t, "transport: pigeon\nlog:\n  format: xml\n")
	_, stderr, err := runCmd(t, "--config", bad, "validate")
	var exitErr exitError
	require.True(t, errors.As(err, &exitErr))
	require.True(t, exitErr.silent)
	require.Equal(t, 1, exitErr.code)
	require.Contains(t, stderr, `transport "pigeon"`)
	require.Contains(t, stderr, `log.format "xml"`)
}

func TestClientConfigCmd_Claude(t *testing.T) {
	out, _, err := runCmd(t, "--config", "/etc/trustable.yaml", "client-config", "--command", "/usr/local/bin/trustable-mcp")
	require.NoError(t, err)

	var got struct {
		MCPServers map[string]stdioEntry `json:"mcpServers"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, stdioEntry{
		Command: "/usr/local/bin/trustable-mcp",
		Args:    []string{"serve", "--config", "/etc/trustable.yaml"},
	}, got.MCPServers["trustable"])

	out, _, err = runCmd(t, "client-config", "--url", "http://127.0.0.1:8090/mcp")
	require.NoError(t, err)
	require.JSONEq(t, `{"mcpServers":{"trustable":{"type":"http","url":"http://127.0.0.1:8090/mcp"}}}`, out)
}

func TestClientConfigCmd_Codex(t *testing.T) {
	out, _, err := runCmd(t, "client-config", "--client", "codex", "--name", "geo", "--command", "trustable-mcp")
	require.NoError(t, err)

	var got struct {
		MCPServers map[string]stdioEntry `toml:"mcp_servers"`
	}
	require.NoError(t, toml.Unmarshal([]byte(out), &got))
	require.Equal(t, stdioEntry{Command: "trustable-mcp", Args: []string{"serve"}}, got.MCPServers["geo"])

	_, _, err = runCmd(t, "client-config", "--client", "vim")
	require.ErrorContains(t, err, `unsupported client "vim"`)
}

func TestVersionCmd(t *testing.T) {
	out, _, err := runCmd(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "trustable-mcp")
}

func TestServeOverrides_OnlyVisitedFlags(t *testing.T) {
	root := newRootCmd()
	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	require.NoError(t, serve.Flags().Parse([]string{"--transport", "http", "--http-token", "secret", "--metrics"}))

	opts := cliOptions{logLevel: "debug"}
	var flags serveFlags
	flags.transport = "http"
	flags.httpToken = "secret"
	flags.metrics = true

	cfg := domain.DefaultConfig()
	cfg.HTTP.Path = "/custom"
	serveOverrides(serve.Flags(), &flags, &opts)(&cfg)

	require.Equal(t, domain.TransportStreamableHTTP, cfg.Transport)
	require.Equal(t, "secret", cfg.HTTP.Token)
	require.True(t, cfg.Observability.Metrics)
	require.Equal(t, "/custom", cfg.HTTP.Path)
	require.False(t, cfg.Observability.Healthz)
}
