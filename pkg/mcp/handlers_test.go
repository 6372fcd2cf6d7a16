package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/techdocs/pkg/docgen"
	"github.com/gnana997/techdocs/pkg/mcplog"
	"github.com/gnana997/techdocs/pkg/scanner"
	"github.com/gnana997/techdocs/pkg/util"
)

const fixtureProject = "../scanner/testdata/project"

// --- helpers ---

func testServer(t *testing.T, journal *mcplog.Journal) *Server {
	t.Helper()
	log := util.DiscardLogger()
	sc := scanner.NewScanner(log, nil)
	return NewServer(sc, docgen.New(sc, log), journal, Defaults{ProjectName: "BusinessConnect", Language: "en"})
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case "analyze_components":
		handler = s.handleAnalyzeComponents
	case "analyze_stores":
		handler = s.handleAnalyzeStores
	case "analyze_types":
		handler = s.handleAnalyzeTypes
	case "generate_html":
		handler = s.handleGenerateHTML
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

func resultMap(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &m))
	return m
}

// --- analyze_* ---

func TestHandleAnalyzeComponents(t *testing.T) {
	s := testServer(t, nil)
	result := callTool(t, s, makeRequest("analyze_components", map[string]any{"path": fixtureProject}))
	require.False(t, result.IsError, resultText(t, result))

	report := resultMap(t, result)
	assert.Equal(t, float64(4), report["total"])
	grouped := report["grouped"].(map[string]any)
	assert.Len(t, grouped["ui"], 1)
	assert.Len(t, grouped["page"], 1)
	assert.Len(t, grouped["other"], 0)
}

func TestHandleAnalyzeStores(t *testing.T) {
	s := testServer(t, nil)
	result := callTool(t, s, makeRequest("analyze_stores", map[string]any{
		"path": filepath.Join(fixtureProject, "store"),
	}))
	require.False(t, result.IsError, resultText(t, result))

	report := resultMap(t, result)
	assert.Equal(t, float64(1), report["total"])
	assert.Equal(t, float64(1), report["withPersistence"])
	stores := report["stores"].([]any)
	assert.Equal(t, "Auth", stores[0].(map[string]any)["name"])
}

func TestHandleAnalyzeTypes(t *testing.T) {
	s := testServer(t, nil)
	result := callTool(t, s, makeRequest("analyze_types", map[string]any{
		"path": filepath.Join(fixtureProject, "types"),
	}))
	require.False(t, result.IsError, resultText(t, result))

	report := resultMap(t, result)
	assert.Equal(t, float64(2), report["total"])
	grouped := report["grouped"].(map[string]any)
	assert.Len(t, grouped["interfaces"], 1)
	assert.Len(t, grouped["types"], 1)
}

func TestHandleAnalyze_Errors(t *testing.T) {
	s := testServer(t, nil)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"no arguments", nil, "path is required"},
		{"blank path", map[string]any{"path": "  "}, "path is required"},
		{"missing path", map[string]any{"path": filepath.Join(t.TempDir(), "gone")}, "path not found"},
	}
	for _, tt := range tests {
		for _, tool := range []string{"analyze_components", "analyze_stores", "analyze_types"} {
			t.Run(tt.name+"/"+tool, func(t *testing.T) {
				result := callTool(t, s, makeRequest(tool, tt.args))
				assert.True(t, result.IsError)
				assert.Contains(t, resultText(t, result), tt.want)
			})
		}
	}
}

// --- generate_html ---

func TestHandleGenerateHTML(t *testing.T) {
	s := testServer(t, nil)
	out := filepath.Join(t.TempDir(), "site", "components.html")

	result := callTool(t, s, makeRequest("generate_html", map[string]any{
		"project": fixtureProject,
		"output":  out,
		"type":    "components",
	}))
	require.False(t, result.IsError, resultText(t, result))

	var gen GenerateResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &gen))
	assert.Equal(t, out, gen.Output)
	assert.Equal(t, "components", gen.Kind)
	assert.Equal(t, 4, gen.Components)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, gen.Bytes, len(data))
	assert.Contains(t, string(data), `<html lang="en">`)
	assert.Contains(t, string(data), "BusinessConnect")
}

func TestHandleGenerateHTML_DefaultsToAll(t *testing.T) {
	s := testServer(t, nil)
	out := filepath.Join(t.TempDir(), "all.html")

	result := callTool(t, s, makeRequest("generate_html", map[string]any{
		"project": fixtureProject,
		"output":  out,
		"name":    "Acme",
		"lang":    "fr",
	}))
	require.False(t, result.IsError, resultText(t, result))

	gen := resultMap(t, result)
	assert.Equal(t, "all", gen["kind"])
	assert.Equal(t, float64(1), gen["stores"])
	assert.Equal(t, float64(2), gen["types"])

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<html lang="fr">`)
	assert.Contains(t, string(data), "Acme")
}

func TestHandleGenerateHTML_Errors(t *testing.T) {
	s := testServer(t, nil)
	out := filepath.Join(t.TempDir(), "out.html")

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"no project", map[string]any{"output": out}, "project is required"},
		{"no output", map[string]any{"project": fixtureProject}, "output is required"},
		{"unknown type", map[string]any{"project": fixtureProject, "output": out, "type": "bogus"}, "unknown documentation type: bogus"},
		{"unsupported language", map[string]any{"project": fixtureProject, "output": out, "lang": "de"}, "unsupported language"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, s, makeRequest("generate_html", tt.args))
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
			assert.NoFileExists(t, out)
		})
	}
}

// --- registration ---

func TestTools_Registered(t *testing.T) {
	s := testServer(t, nil)
	var names []string
	for _, tool := range s.tools() {
		names = append(names, tool.Tool.Name)
		assert.NotEmpty(t, tool.Tool.Description)
		assert.NotNil(t, tool.Handler)
	}
	assert.Equal(t, ToolNames, names)
}

func TestInputSchema(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal(inputSchema(&GenerateArgs{}), &schema))

	assert.Equal(t, "object", schema["type"])
	assert.NotContains(t, schema, "$schema")
	assert.ElementsMatch(t, []any{"project", "output"}, schema["required"])

	props := schema["properties"].(map[string]any)
	typeProp := props["type"].(map[string]any)
	assert.ElementsMatch(t, []any{"components", "architecture", "developer", "types", "all"}, typeProp["enum"])

	require.NoError(t, json.Unmarshal(inputSchema(&AnalyzeArgs{}), &schema))
	assert.Equal(t, []any{"path"}, schema["required"])
}

// --- call journal ---

func readCalls(t *testing.T, path string) []mcplog.Call {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var calls []mcplog.Call
	lines := bufio.NewScanner(f)
	for lines.Scan() {
		var c mcplog.Call
		require.NoError(t, json.Unmarshal(lines.Bytes(), &c))
		calls = append(calls, c)
	}
	return calls
}

func TestJournalMiddleware(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calls.jsonl")
	journal, err := mcplog.Open(path)
	require.NoError(t, err)

	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	s := testServer(t, journal)
	mw := s.journalMiddleware()
	typesDir := filepath.Join(fixtureProject, "types")

	calls := []struct {
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		req     mcp.CallToolRequest
	}{
		{s.handleAnalyzeTypes, makeRequest("analyze_types", map[string]any{"path": typesDir})},
		{s.handleAnalyzeTypes, makeRequest("analyze_types", map[string]any{"path": ""})},
		{s.handleGenerateHTML, makeRequest("generate_html", map[string]any{
			"project": fixtureProject,
			"output":  filepath.Join(dir, "docs.html"),
			"type":    "types",
		})},
		{s.handleGenerateHTML, makeRequest("generate_html", map[string]any{
			"project": fixtureProject,
			"output":  filepath.Join(blocker, "docs.html"),
			"type":    "components",
		})},
	}
	for _, c := range calls {
		_, err := mw(c.handler)(context.Background(), c.req)
		require.NoError(t, err)
	}
	require.NoError(t, journal.Close())

	got := readCalls(t, path)
	require.Len(t, got, 4)

	assert.Equal(t, "analyze_types", got[0].Tool)
	assert.Equal(t, typesDir, got[0].Target)
	assert.Equal(t, mcplog.OutcomeOK, got[0].Outcome)
	require.NotNil(t, got[0].Records)
	assert.Equal(t, 2, *got[0].Records)

	assert.Equal(t, mcplog.OutcomeRejected, got[1].Outcome)
	assert.Equal(t, "path is required", got[1].Message)
	assert.Nil(t, got[1].Records)

	require.NotNil(t, got[2].Generation)
	assert.Equal(t, mcplog.OutcomeOK, got[2].Outcome)
	assert.Equal(t, "types", got[2].Generation.Kind)
	assert.Equal(t, 2, got[2].Generation.Types)
	assert.Positive(t, got[2].Generation.Bytes)
	assert.Empty(t, got[2].Generation.FailedStage)

	require.NotNil(t, got[3].Generation)
	assert.Equal(t, mcplog.OutcomeRejected, got[3].Outcome)
	assert.Equal(t, string(docgen.StageWriting), got[3].Generation.FailedStage)
	assert.Zero(t, got[3].Generation.Bytes)
}

func TestHandlers_WithoutJournal(t *testing.T) {
	s := testServer(t, nil)
	result := callTool(t, s, makeRequest("analyze_stores", map[string]any{
		"path": filepath.Join(fixtureProject, "store"),
	}))
	assert.False(t, result.IsError)
}
