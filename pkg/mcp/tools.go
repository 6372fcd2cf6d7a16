package mcp

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// AnalyzeArgs are the arguments of the analyze_* tools.
type AnalyzeArgs struct {
	Path string `json:"path" jsonschema:"description=Directory (or single file) to scan"`
}

// GenerateArgs are the arguments of generate_html.
type GenerateArgs struct {
	Project string `json:"project" jsonschema:"description=Project source root"`
	Output  string `json:"output" jsonschema:"description=Path of the HTML file to write"`
	Type    string `json:"type,omitempty" jsonschema:"enum=components,enum=architecture,enum=developer,enum=types,enum=all,default=all"`
	Name    string `json:"name,omitempty" jsonschema:"description=Project name shown on the cover"`
	Lang    string `json:"lang,omitempty" jsonschema:"description=Document language (fr or en)"`
}

// ToolNames lists the tools in registration order.
var ToolNames = []string{"analyze_components", "analyze_stores", "analyze_types", "generate_html"}

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewToolWithRawSchema("analyze_components",
				"Scan .tsx/.jsx files and return the component report: name, category, props, hooks and description per component, grouped by category.",
				inputSchema(&AnalyzeArgs{})),
			Handler: s.handleAnalyzeComponents,
		},
		{
			Tool: mcp.NewToolWithRawSchema("analyze_stores",
				"Scan .ts files for state stores and return their state fields, actions and persistence settings.",
				inputSchema(&AnalyzeArgs{})),
			Handler: s.handleAnalyzeStores,
		},
		{
			Tool: mcp.NewToolWithRawSchema("analyze_types",
				"Scan .ts files and return exported interfaces, type aliases, enums and constants grouped by kind.",
				inputSchema(&AnalyzeArgs{})),
			Handler: s.handleAnalyzeTypes,
		},
		{
			Tool: mcp.NewToolWithRawSchema("generate_html",
				"Generate the HTML documentation of a project and write it to output. Returns the output path and record counts.",
				inputSchema(&GenerateArgs{})),
			Handler: s.handleGenerateHTML,
		},
	}
}

// inputSchema reflects v into the inline object schema MCP clients expect.
func inputSchema(v any) json.RawMessage {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(v)
	schema.Version = ""
	schema.ID = ""
	data, err := json.Marshal(schema)
	if err != nil {
		// Only reachable if a schema struct above is malformed.
		panic("mcp: marshal input schema: " + err.Error())
	}
	return data
}
