package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gnana997/techdocs/pkg/docgen"
	"github.com/gnana997/techdocs/pkg/docmodel"
	"github.com/gnana997/techdocs/pkg/render"
	"github.com/gnana997/techdocs/pkg/scanner"
	"github.com/gnana997/techdocs/pkg/watch"
)

// signalContext is cancelled on interrupt. Replaceable for testing.
var signalContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// genFlags are shared by html, pdf and watch.
type genFlags struct {
	project *string
	output  *string
	kind    *string
	name    *string
	lang    *string
}

func addGenFlags(cmd *command, kindUsage string) *genFlags {
	return &genFlags{
		project: cmd.fs.String("project", "", "project source root (required)"),
		output:  cmd.fs.String("output", "", "output file (required)"),
		kind:    cmd.fs.String("type", "", kindUsage),
		name:    cmd.fs.String("name", "", "project name shown on the cover"),
		lang:    cmd.fs.String("lang", "", "document language: fr or en"),
	}
}

// options validates the flags of cmd and merges them with the project
// config. Flags win over the config file.
func (g *genFlags) options(cmd *command, format docgen.Format) (docgen.Options, error) {
	if err := requireFlag(cmd, "project", *g.project); err != nil {
		return docgen.Options{}, err
	}
	if err := requireFlag(cmd, "output", *g.output); err != nil {
		return docgen.Options{}, err
	}

	var kind docmodel.DocumentKind
	var err error
	if format == docgen.FormatPDF {
		if err := requireFlag(cmd, "type", *g.kind); err != nil {
			return docgen.Options{}, err
		}
		kind, err = docmodel.ParseSingleKind(*g.kind)
	} else {
		kind, err = docmodel.ParseDocumentKind(resolve(*g.kind, "", string(docmodel.DocAll)))
	}
	if err != nil {
		return docgen.Options{}, err
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return docgen.Options{}, err
	}
	loc, err := render.ParseLocale(resolve(*g.lang, cfg.Language, render.DefaultLanguage))
	if err != nil {
		return docgen.Options{}, err
	}

	layout := scanner.DefaultLayout(*g.project)
	if cfg.TypesDir != "" {
		layout.TypesDir = cfg.TypesDir
	}
	if cfg.StoresDir != "" {
		layout.StoresDir = cfg.StoresDir
	}

	return docgen.Options{
		Format:      format,
		Kind:        kind,
		Layout:      layout,
		OutputPath:  *g.output,
		ProjectName: resolve(*g.name, cfg.ProjectName, defaultProjectName),
		Locale:      loc,
	}, nil
}

func (a *app) runHTML(args []string) error {
	cmd := newCommand("html", "techdocs html --project <path> --output <path> [--type <kind>] [--name <name>] [--lang fr|en]")
	flags := addGenFlags(cmd, "components, architecture, developer, types or all")
	if _, err := cmd.parse(args, a.stdout); err != nil {
		return err
	}
	opts, err := flags.options(cmd, docgen.FormatHTML)
	if err != nil {
		return err
	}

	logger := a.logger(*cmd.verbose)
	cache, err := newCache(logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	fmt.Fprintf(a.stdout, "Generating %s documentation...\n", opts.Kind)
	gen := docgen.New(scanner.NewScanner(logger, cache), logger)
	res, err := gen.Generate(context.Background(), opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Documentation HTML written to: %s\n", res.OutputPath)
	fmt.Fprintln(a.stdout, "To save it as PDF, open the file in a browser and print it (Ctrl+P or Cmd+P).")
	return nil
}

func (a *app) runPDF(args []string) error {
	cmd := newCommand("pdf", "techdocs pdf --type <kind> --project <path> --output <path> [--lang fr|en] [--name <name>] [--timeout <duration>] [--chrome <path>]")
	flags := addGenFlags(cmd, "components, architecture, developer or types (required)")
	timeout := cmd.fs.Duration("timeout", 0, "abort printing after this long (0 waits indefinitely)")
	chrome := cmd.fs.String("chrome", "", "Chrome or Chromium executable (default: search PATH)")
	if _, err := cmd.parse(args, a.stdout); err != nil {
		return err
	}
	opts, err := flags.options(cmd, docgen.FormatPDF)
	if err != nil {
		return err
	}
	if *timeout < 0 {
		return usageErrorf(cmd.synopsis, "--timeout must not be negative")
	}

	logger := a.logger(*cmd.verbose)
	cache, err := newCache(logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	opts.Printer = &render.ChromePrinter{ExecPath: *chrome, Timeout: *timeout, Logger: logger}

	ctx, stop := signalContext()
	defer stop()

	fmt.Fprintln(a.stdout, "Launching browser...")
	fmt.Fprintln(a.stdout, "Generating PDF...")
	gen := docgen.New(scanner.NewScanner(logger, cache), logger)
	res, err := gen.Generate(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "PDF generated successfully: %s\n", res.OutputPath)
	return nil
}

// runWatch generates the HTML documentation once, then again after every
// source change until interrupted.
func (a *app) runWatch(args []string) error {
	cmd := newCommand("watch", "techdocs watch --project <path> --output <path> [--type <kind>] [--name <name>] [--lang fr|en] [--debounce <duration>]")
	flags := addGenFlags(cmd, "components, architecture, developer, types or all")
	debounce := cmd.fs.Duration("debounce", 200*time.Millisecond, "quiet period before regenerating")
	if _, err := cmd.parse(args, a.stdout); err != nil {
		return err
	}
	opts, err := flags.options(cmd, docgen.FormatHTML)
	if err != nil {
		return err
	}
	if *debounce <= 0 {
		return usageErrorf(cmd.synopsis, "--debounce must be positive")
	}

	logger := a.logger(*cmd.verbose)
	cache, err := newCache(logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx, stop := signalContext()
	defer stop()

	gen := docgen.New(scanner.NewScanner(logger, cache), logger)
	generate := func(ctx context.Context) error {
		res, err := gen.Generate(ctx, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "[%s] Documentation HTML written to: %s\n", time.Now().Format("15:04:05"), res.OutputPath)
		return nil
	}
	if err := generate(ctx); err != nil {
		return err
	}

	// Later failures are reported and the watch goes on.
	regenerate := func(ctx context.Context) error {
		err := generate(ctx)
		if err != nil {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
		}
		return err
	}

	wopts := watch.DefaultOptions()
	wopts.DebounceMs = int(debounce.Milliseconds())
	w, err := watch.New(regenerate, cache, wopts, logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx, opts.Layout.Root); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Watching %s for changes (Ctrl+C to stop)\n", opts.Layout.Root)

	<-ctx.Done()
	if err := w.Stop(); err != nil {
		logger.Warn("failed to stop watcher", "error", err)
	}
	stats := w.Stats()
	fmt.Fprintf(a.stdout, "Stopped after %d regenerations\n", stats.Regenerations)
	return nil
}
