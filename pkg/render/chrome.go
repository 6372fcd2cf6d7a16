package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromePrinter prints through a headless Chrome launched per call. The
// browser is torn down before PrintPDF returns, on success or failure.
type ChromePrinter struct {
	// ExecPath overrides the browser binary; empty uses chromedp's lookup.
	ExecPath string
	// Timeout bounds one print. Zero waits indefinitely.
	Timeout time.Duration
	Logger  *slog.Logger
}

// PrintPDF loads html into a blank page, waits for the body, and prints it.
func (p *ChromePrinter) PrintPDF(ctx context.Context, html []byte, opts PageOptions) ([]byte, error) {
	if len(html) == 0 {
		return nil, ErrEmptyHTML
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	if p.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(func(format string, args ...any) {
			logger.Debug("chrome", "message", fmt.Sprintf(format, args...))
		}),
	)
	defer cancelBrowser()

	logger.Debug("launching browser")
	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("get frame tree: %w", err)
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPaperWidth(opts.PaperWidth).
				WithPaperHeight(opts.PaperHeight).
				WithMarginTop(opts.MarginTop).
				WithMarginBottom(opts.MarginBottom).
				WithMarginLeft(opts.MarginLeft).
				WithMarginRight(opts.MarginRight).
				WithPrintBackground(opts.PrintBackground).
				WithDisplayHeaderFooter(opts.HeaderTemplate != "" || opts.FooterTemplate != "").
				WithHeaderTemplate(opts.HeaderTemplate).
				WithFooterTemplate(opts.FooterTemplate).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome: %w", err)
	}
	return pdf, nil
}
