// Package mcp exposes project analysis and HTML generation as MCP tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/techdocs/pkg/docgen"
	"github.com/gnana997/techdocs/pkg/mcplog"
	"github.com/gnana997/techdocs/pkg/scanner"
)

const serverVersion = "0.1.0-dev"

// Defaults fill generate_html arguments the caller leaves out.
type Defaults struct {
	ProjectName string
	Language    string
	TypesDir    string
	StoresDir   string
}

// Server is the techdocs MCP server.
type Server struct {
	mcpServer *server.MCPServer
	scanner   *scanner.Scanner
	generator *docgen.Generator
	journal   *mcplog.Journal // nil disables the call journal
	defaults  Defaults
}

// NewServer creates a server over s and g. journal may be nil.
func NewServer(s *scanner.Scanner, g *docgen.Generator, journal *mcplog.Journal, defaults Defaults) *Server {
	srv := &Server{scanner: s, generator: g, journal: journal, defaults: defaults}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if journal != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(srv.journalMiddleware()))
	}
	srv.mcpServer = server.NewMCPServer("techdocs", serverVersion, opts...)
	srv.mcpServer.AddTools(srv.tools()...)

	return srv
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
