package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnana997/techdocs/pkg/docmodel"
)

// ErrEmptyHTML is returned when there is nothing to print.
var ErrEmptyHTML = errors.New("empty html document")

// PageOptions describes the printed page. Sizes are in inches.
type PageOptions struct {
	PaperWidth      float64
	PaperHeight     float64
	MarginTop       float64
	MarginBottom    float64
	MarginLeft      float64
	MarginRight     float64
	PrintBackground bool
	// HeaderTemplate and FooterTemplate use the browser's print template
	// classes (pageNumber, totalPages).
	HeaderTemplate string
	FooterTemplate string
}

// DefaultPageOptions is A4 with 1in top/bottom and 0.75in side margins, a
// blank header and a "page / total" footer.
func DefaultPageOptions() PageOptions {
	return PageOptions{
		PaperWidth:      8.27,
		PaperHeight:     11.69,
		MarginTop:       1,
		MarginBottom:    1,
		MarginLeft:      0.75,
		MarginRight:     0.75,
		PrintBackground: true,
		HeaderTemplate:  `<div></div>`,
		FooterTemplate: `<div style="font-size: 9pt; color: #64748b; width: 100%; text-align: center; padding: 10px;">` +
			`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`,
	}
}

// Printer turns an HTML document into PDF bytes.
type Printer interface {
	PrintPDF(ctx context.Context, html []byte, opts PageOptions) ([]byte, error)
}

// PDFRenderer renders the print variant of the HTML document and hands it
// to a Printer.
type PDFRenderer struct {
	html    *HTMLRenderer
	printer Printer
	page    PageOptions
	log     *slog.Logger
}

// NewPDFRenderer creates a PDF renderer for loc using the default page.
func NewPDFRenderer(loc *Locale, printer Printer, logger *slog.Logger) *PDFRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFRenderer{
		html:    NewHTMLRenderer(loc, HTMLOptions{Highlight: true}),
		printer: printer,
		page:    DefaultPageOptions(),
		log:     logger,
	}
}

// WithPageOptions overrides the page layout.
func (r *PDFRenderer) WithPageOptions(opts PageOptions) *PDFRenderer {
	r.page = opts
	return r
}

// Render prints doc. A PDF covers exactly one topic, so documents of kind
// "all" are rejected.
func (r *PDFRenderer) Render(ctx context.Context, doc *docmodel.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("render pdf: nil document")
	}
	if doc.Metadata.Kind == docmodel.DocAll {
		return nil, fmt.Errorf("render pdf: %w", docmodel.ErrAllNotSupported)
	}

	html, err := r.html.RenderBytes(doc)
	if err != nil {
		return nil, err
	}
	if len(html) == 0 {
		return nil, ErrEmptyHTML
	}

	start := time.Now()
	r.log.Info("printing pdf", "kind", doc.Metadata.Kind, "html_bytes", len(html))
	pdf, err := r.printer.PrintPDF(ctx, html, r.page)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	r.log.Info("pdf printed", "bytes", len(pdf), "ms", time.Since(start).Milliseconds())
	return pdf, nil
}
