package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/techdocs/pkg/mcplog"
)

// journalMiddleware hands every tool call a journal record through its
// context and appends the record once the handler returns.
func (s *Server) journalMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			call := mcplog.Begin(req.Params.Name, req.GetArguments())
			result, err := next(mcplog.WithCall(ctx, call), req)
			call.Finish(result, err)
			_ = s.journal.Record(call)
			return result, err
		}
	}
}
