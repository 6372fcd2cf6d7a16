package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/techdocs/pkg/mcplog"
)

// binaryPath is set by TestMain after building the binary.
var binaryPath string

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	tmp, err := os.MkdirTemp("", "techdocs-integration-*")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(tmp, "techdocs")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmp)
		panic("failed to build binary: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

// --- helpers ---

func skipIfNotIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run integration tests")
	}
}

// startServer launches techdocs serve as a subprocess and returns an
// initialized MCP client.
func startServer(t *testing.T, args ...string) *client.Client {
	t.Helper()

	c, err := client.NewStdioMCPClient(binaryPath, nil, append([]string{"serve"}, args...)...)
	require.NoError(t, err, "failed to start MCP server")
	t.Cleanup(func() {
		c.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "techdocs-integration-test",
		Version: "1.0.0",
	}

	result, err := c.Initialize(ctx, initReq)
	require.NoError(t, err, "failed to initialize MCP session")
	assert.Equal(t, "techdocs", result.ServerInfo.Name)

	return c
}

func callToolHelper(t *testing.T, c *client.Client, toolName string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = toolName
	if args != nil {
		req.Params.Arguments = args
	}

	result, err := c.CallTool(ctx, req)
	require.NoError(t, err, "CallTool(%s) failed", toolName)
	return result
}

func extractText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content, "expected content in result")
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- integration tests ---

func TestIntegration_ListTools(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make([]string, len(tools.Tools))
	for i, tool := range tools.Tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{"analyze_components", "analyze_stores", "analyze_types", "generate_html"}, names)
}

func TestIntegration_AnalyzeTypes(t *testing.T) {
	skipIfNotIntegration(t)
	project := fixtureProject(t)
	c := startServer(t)

	result := callToolHelper(t, c, "analyze_types", map[string]any{"path": filepath.Join(project, "types")})
	require.False(t, result.IsError, extractText(t, result))

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(extractText(t, result)), &report))
	assert.Equal(t, float64(2), report["total"])
}

func TestIntegration_GenerateHTMLWithCallLog(t *testing.T) {
	skipIfNotIntegration(t)
	project := fixtureProject(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.jsonl")
	out := filepath.Join(dir, "docs.html")

	c := startServer(t, "--log-file", logPath)
	result := callToolHelper(t, c, "generate_html", map[string]any{
		"project": project,
		"output":  out,
		"type":    "architecture",
	})
	require.False(t, result.IsError, extractText(t, result))
	assert.FileExists(t, out)

	missing := callToolHelper(t, c, "analyze_stores", map[string]any{"path": filepath.Join(dir, "none")})
	assert.True(t, missing.IsError)

	require.NoError(t, c.Close())
	var lines []string
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logPath)
		if err != nil {
			return false
		}
		lines = strings.Split(strings.TrimSpace(string(data)), "\n")
		return len(lines) == 2
	}, 5*time.Second, 50*time.Millisecond)

	var generated, rejected mcplog.Call
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &generated))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rejected))
	require.NotNil(t, generated.Generation)
	assert.Equal(t, "architecture", generated.Generation.Kind)
	assert.Equal(t, out, generated.Generation.Output)
	assert.Equal(t, mcplog.OutcomeRejected, rejected.Outcome)
}
