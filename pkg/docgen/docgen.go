// Package docgen runs one documentation generation: scan the project,
// aggregate the records into a document and render it.
//
// A run moves through Scanning, Extracting, Aggregating and Rendering and
// either writes its output or fails. A failure at any stage is terminal and
// is reported as a *StageError naming the stage.
package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnana997/techdocs/pkg/docmodel"
	"github.com/gnana997/techdocs/pkg/render"
	"github.com/gnana997/techdocs/pkg/scanner"
)

// Stage is one step of a generation run.
type Stage string

const (
	StageScanning    Stage = "scanning"
	StageExtracting  Stage = "extracting"
	StageAggregating Stage = "aggregating"
	StageRendering   Stage = "rendering"
	StageWriting     Stage = "writing"
)

// StageError reports the stage a run failed in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Format selects the renderer.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// Options describes one run.
type Options struct {
	Format      Format
	Kind        docmodel.DocumentKind
	Layout      scanner.ProjectLayout
	OutputPath  string
	ProjectName string
	Locale      *render.Locale
	// Printer is required for FormatPDF.
	Printer render.Printer
	// Now defaults to time.Now.
	Now func() time.Time
}

// Result summarizes a successful run.
type Result struct {
	OutputPath string
	Bytes      int
	Document   *docmodel.Document
	Stats      scanner.ProjectStats
	Duration   time.Duration
}

// Generator runs generations with a shared scanner.
type Generator struct {
	scanner *scanner.Scanner
	log     *slog.Logger
}

// New creates a generator.
func New(s *scanner.Scanner, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{scanner: s, log: logger}
}

// Generate runs opts to completion. The output file is written only after
// rendering succeeded.
func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Locale == nil {
		return nil, &StageError{Stage: StageScanning, Err: fmt.Errorf("locale is required")}
	}
	topics := opts.Kind.Topics()
	if topics == nil {
		return nil, &StageError{Stage: StageScanning, Err: &docmodel.UnknownKindError{Kind: string(opts.Kind)}}
	}
	if opts.Format == FormatPDF && opts.Kind == docmodel.DocAll {
		return nil, &StageError{Stage: StageScanning, Err: docmodel.ErrAllNotSupported}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	g.log.Info("generation started", "kind", opts.Kind, "format", opts.Format, "project", opts.Layout.Root)

	// Scanning and extraction are interleaved by the lazy walk; a failure to
	// open the project is a scanning failure, anything later is extraction.
	in, stats, err := g.scanner.ScanProject(opts.Layout, topics)
	if err != nil {
		return nil, &StageError{Stage: StageScanning, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &StageError{Stage: StageExtracting, Err: err}
	}

	doc, err := docmodel.Build(docmodel.Request{
		Kind:        opts.Kind,
		ProjectName: opts.ProjectName,
		Language:    opts.Locale.Code(),
		GeneratedAt: now(),
		Labels:      opts.Locale,
	}, in)
	if err != nil {
		return nil, &StageError{Stage: StageAggregating, Err: err}
	}

	var out []byte
	switch opts.Format {
	case FormatPDF:
		if opts.Printer == nil {
			return nil, &StageError{Stage: StageRendering, Err: fmt.Errorf("pdf output needs a printer")}
		}
		out, err = render.NewPDFRenderer(opts.Locale, opts.Printer, g.log).Render(ctx, doc)
	default:
		out, err = render.NewHTMLRenderer(opts.Locale, render.HTMLOptions{PrintNotice: true}).RenderBytes(doc)
	}
	if err != nil {
		return nil, &StageError{Stage: StageRendering, Err: err}
	}

	if err := render.WriteFile(opts.OutputPath, out); err != nil {
		return nil, &StageError{Stage: StageWriting, Err: err}
	}

	res := &Result{
		OutputPath: opts.OutputPath,
		Bytes:      len(out),
		Document:   doc,
		Stats:      stats,
		Duration:   time.Since(start),
	}
	g.log.Info("generation complete",
		"output", opts.OutputPath,
		"bytes", res.Bytes,
		"components", doc.Counts.Components,
		"types", doc.Counts.Types,
		"stores", doc.Counts.Stores,
		"ms", res.Duration.Milliseconds())
	return res, nil
}
