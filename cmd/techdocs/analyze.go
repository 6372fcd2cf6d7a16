package main

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/gnana997/techdocs/pkg/docmodel"
	"github.com/gnana997/techdocs/pkg/render"
	"github.com/gnana997/techdocs/pkg/scanner"
	"github.com/gnana997/techdocs/pkg/util"
)

// analysis describes one of the three scan commands.
type analysis struct {
	name string
	arg  string
	noun string
	scan func(s *scanner.Scanner, root string) (report any, found int, err error)
}

var analyzeComponents = analysis{
	name: "components",
	arg:  "<directory>",
	noun: "components",
	scan: func(s *scanner.Scanner, root string) (any, int, error) {
		res, err := s.ScanComponents(root)
		if err != nil {
			return nil, 0, err
		}
		return docmodel.NewComponentReport(res.Records), len(res.Records), nil
	},
}

var analyzeStores = analysis{
	name: "stores",
	arg:  "<directory>",
	noun: "stores",
	scan: func(s *scanner.Scanner, root string) (any, int, error) {
		res, err := s.ScanStores(root)
		if err != nil {
			return nil, 0, err
		}
		return docmodel.NewStoreReport(res.Records), len(res.Records), nil
	},
}

var analyzeTypes = analysis{
	name: "types",
	arg:  "<path>",
	noun: "type definitions",
	scan: func(s *scanner.Scanner, root string) (any, int, error) {
		res, err := s.ScanTypes(root)
		if err != nil {
			return nil, 0, err
		}
		return docmodel.NewTypeReport(res.Records), len(res.Records), nil
	},
}

// runAnalyze scans one directory (or file, for types) and writes the JSON
// report to --output or stdout. Status lines move to stderr when the report
// itself goes to stdout.
func (a *app) runAnalyze(an analysis, args []string) error {
	cmd := newCommand(an.name, fmt.Sprintf("techdocs %s %s [--output <path>] [--verbose]", an.name, an.arg))
	output := cmd.fs.String("output", "", "write the JSON report to this file instead of stdout")
	positional, err := cmd.parse(args, a.stdout)
	if err != nil {
		return err
	}
	if len(positional) < 1 {
		return usageErrorf(cmd.synopsis, "missing %s", an.arg)
	}
	if len(positional) > 1 {
		return usageErrorf(cmd.synopsis, "unexpected argument %q", positional[1])
	}
	root := positional[0]

	status := a.stdout
	if *output == "" {
		status = a.stderr
	}

	logger := a.logger(*cmd.verbose)
	cache, err := newCache(logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	fmt.Fprintf(status, "Analyzing %s in: %s\n", an.name, root)
	report, found, err := an.scan(scanner.NewScanner(logger, cache), root)
	if err != nil {
		return err
	}
	fmt.Fprintf(status, "Found %d %s\n", found, an.noun)

	if *output == "" {
		return docmodel.WriteJSON(a.stdout, report)
	}
	if err := writeReport(*output, report); err != nil {
		return err
	}
	fmt.Fprintf(status, "Analysis written to: %s\n", *output)
	return nil
}

func newCache(logger *slog.Logger) (util.SourceCache, error) {
	cfg := util.DefaultSourceCacheConfig()
	cfg.Logger = logger
	return util.NewSourceCache(cfg)
}

func writeReport(path string, report any) error {
	var buf bytes.Buffer
	if err := docmodel.WriteJSON(&buf, report); err != nil {
		return err
	}
	return render.WriteFile(path, buf.Bytes())
}

// runSchema prints the JSON Schema of one report kind.
func (a *app) runSchema(args []string) error {
	cmd := newCommand("schema", "techdocs schema <components|stores|types>")
	positional, err := cmd.parse(args, a.stdout)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return usageErrorf(cmd.synopsis, "expected exactly one report kind")
	}
	schema, err := docmodel.ReportSchema(positional[0])
	if err != nil {
		return usageErrorf(cmd.synopsis, "%v", err)
	}
	return docmodel.WriteJSON(a.stdout, schema)
}
