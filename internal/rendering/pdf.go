package rendering

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-builder/internal/types"
)

// A4 portrait dimensions in inches.
const (
	pageWidthInches  = 8.27
	pageHeightInches = 11.69
)

// renderTimeout bounds one headless-browser rasterization.
const renderTimeout = 60 * time.Second

var whitespace = regexp.MustCompile(`\s+`)

// FileName builds the export file name, collapsing whitespace to underscores.
func FileName(info types.PersonalInfo) string {
	name := info.FirstName + "_" + info.LastName + "_Resume.pdf"
	return whitespace.ReplaceAllString(name, "_")
}

// Export holds a rasterized PDF ready for download or share handoff.
type Export struct {
	FileName string
	PDF      []byte
}

// Exporter rasterizes the rendered preview into a PDF via a headless
// browser. Requires Chrome/Chromium on the system; CHROME_PATH overrides
// the binary location.
type Exporter struct{}

// NewExporter creates a PDF exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportPDF renders the resume preview and rasterizes it onto A4 portrait
// pages, scaled to fit the page width. Failures are surfaced as *ExportError.
func (e *Exporter) ExportPDF(ctx context.Context, data types.ResumeData) (*Export, error) {
	html, err := RenderHTML(data)
	if err != nil {
		return nil, &ExportError{Stage: "export", Message: "failed to render preview", Cause: err}
	}

	pdf, err := printToPDF(ctx, html)
	if err != nil {
		return nil, &ExportError{Stage: "export", Message: "failed to generate PDF", Cause: err}
	}

	return &Export{FileName: FileName(data.PersonalInfo), PDF: pdf}, nil
}

// printToPDF loads the HTML into a headless browser and prints it.
func printToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelTimeout()

	tmpDir, err := os.MkdirTemp("", "resume-preview-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(pageWidthInches).
				WithPaperHeight(pageHeightInches).
				WithScale(1).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
