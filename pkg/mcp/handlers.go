package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/techdocs/pkg/docgen"
	"github.com/gnana997/techdocs/pkg/docmodel"
	"github.com/gnana997/techdocs/pkg/mcplog"
	"github.com/gnana997/techdocs/pkg/render"
	"github.com/gnana997/techdocs/pkg/scanner"
)

// GenerateResult is the generate_html response.
type GenerateResult struct {
	Output     string `json:"output"`
	Bytes      int    `json:"bytes"`
	Kind       string `json:"kind"`
	Components int    `json:"components"`
	Types      int    `json:"types"`
	Stores     int    `json:"stores"`
}

// Tool failures (bad arguments, missing paths) are returned as error results
// so the client sees the message; the Go error is reserved for protocol
// problems.

func (s *Server) handleAnalyzeComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, errResult := analyzePath(req)
	if errResult != nil {
		return errResult, nil
	}
	res, err := s.scanner.ScanComponents(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mcplog.CallFrom(ctx).SetRecords(len(res.Records))
	return jsonResult(docmodel.NewComponentReport(res.Records))
}

func (s *Server) handleAnalyzeStores(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, errResult := analyzePath(req)
	if errResult != nil {
		return errResult, nil
	}
	res, err := s.scanner.ScanStores(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mcplog.CallFrom(ctx).SetRecords(len(res.Records))
	return jsonResult(docmodel.NewStoreReport(res.Records))
}

func (s *Server) handleAnalyzeTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, errResult := analyzePath(req)
	if errResult != nil {
		return errResult, nil
	}
	res, err := s.scanner.ScanTypes(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mcplog.CallFrom(ctx).SetRecords(len(res.Records))
	return jsonResult(docmodel.NewTypeReport(res.Records))
}

func (s *Server) handleGenerateHTML(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args GenerateArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if strings.TrimSpace(args.Project) == "" {
		return mcp.NewToolResultError("project is required"), nil
	}
	if strings.TrimSpace(args.Output) == "" {
		return mcp.NewToolResultError("output is required"), nil
	}

	kind := docmodel.DocAll
	if args.Type != "" {
		kind = docmodel.DocumentKind(args.Type)
	}
	lang := firstNonEmpty(args.Lang, s.defaults.Language)
	loc, err := render.ParseLocale(lang)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	layout := scanner.DefaultLayout(args.Project)
	if s.defaults.TypesDir != "" {
		layout.TypesDir = s.defaults.TypesDir
	}
	if s.defaults.StoresDir != "" {
		layout.StoresDir = s.defaults.StoresDir
	}

	res, err := s.generator.Generate(ctx, docgen.Options{
		Format:      docgen.FormatHTML,
		Kind:        kind,
		Layout:      layout,
		OutputPath:  args.Output,
		ProjectName: firstNonEmpty(args.Name, s.defaults.ProjectName),
		Locale:      loc,
	})
	if err != nil {
		gen := mcplog.Generation{Kind: string(kind)}
		var stageErr *docgen.StageError
		if errors.As(err, &stageErr) {
			gen.FailedStage = string(stageErr.Stage)
		}
		mcplog.CallFrom(ctx).SetGeneration(gen)
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := GenerateResult{
		Output:     res.OutputPath,
		Bytes:      res.Bytes,
		Kind:       string(kind),
		Components: res.Document.Counts.Components,
		Types:      res.Document.Counts.Types,
		Stores:     res.Document.Counts.Stores,
	}
	mcplog.CallFrom(ctx).SetGeneration(mcplog.Generation{
		Kind:       out.Kind,
		Output:     out.Output,
		Bytes:      out.Bytes,
		Components: out.Components,
		Types:      out.Types,
		Stores:     out.Stores,
	})
	return jsonResult(out)
}

func analyzePath(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	var args AnalyzeArgs
	if err := req.BindArguments(&args); err != nil {
		return "", mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if strings.TrimSpace(args.Path) == "" {
		return "", mcp.NewToolResultError("path is required")
	}
	return args.Path, nil
}

// jsonResult encodes v the same way the CLI writes its reports.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := docmodel.WriteJSON(&buf, v); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
