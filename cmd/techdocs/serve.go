package main

import (
	"fmt"

	"github.com/gnana997/techdocs/pkg/docgen"
	mcpserver "github.com/gnana997/techdocs/pkg/mcp"
	"github.com/gnana997/techdocs/pkg/mcplog"
	"github.com/gnana997/techdocs/pkg/scanner"
)

// runServe serves the MCP tools on stdin/stdout. Nothing but protocol
// messages may be written to stdout.
func (a *app) runServe(args []string) error {
	cmd := newCommand("serve", "techdocs serve [--log-file <path>] [--verbose]")
	logFile := cmd.fs.String("log-file", "", "append one JSON line per tool call to this file")
	if _, err := cmd.parse(args, a.stderr); err != nil {
		return err
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	journal, err := mcplog.Open(*logFile)
	if err != nil {
		return err
	}
	defer journal.Close()

	logger := a.logger(*cmd.verbose)
	cache, err := newCache(logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	sc := scanner.NewScanner(logger, cache)
	srv := mcpserver.NewServer(sc, docgen.New(sc, logger), journal, mcpserver.Defaults{
		ProjectName: resolve("", cfg.ProjectName, defaultProjectName),
		Language:    cfg.Language,
		TypesDir:    cfg.TypesDir,
		StoresDir:   cfg.StoresDir,
	})
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
