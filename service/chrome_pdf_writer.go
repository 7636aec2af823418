package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"happywrap-deck/render"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// chromePrintTimeout bounds one PrintToPDF run
const chromePrintTimeout = 60 * time.Second

var chromePagesTemplate = template.Must(template.New("pages").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.Width}}px {{.Height}}px; margin: 0; }
html, body { margin: 0; padding: 0; }
img { display: block; width: {{.Width}}px; height: {{.Height}}px; page-break-after: always; }
img:last-child { page-break-after: auto; }
</style>
</head>
<body>
{{range .Pages}}<img src="{{.}}">
{{end}}</body>
</html>`))

// ChromePDFWriter prints the page images through headless Chrome
type ChromePDFWriter struct {
	meta       DocumentMeta
	chromePath string
	pages      []template.URL
}

var _ DocumentWriter = (*ChromePDFWriter)(nil)

// NewChromePDFWriterFactory returns a factory using chromePath, or a detected Chrome when empty
func NewChromePDFWriterFactory(chromePath string) DocumentWriterFactory {
	return func(meta DocumentMeta) DocumentWriter {
		return &ChromePDFWriter{meta: meta, chromePath: chromePath}
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// AddPage queues p as a data URL
func (w *ChromePDFWriter) AddPage(p *EncodedPage) error {
	if p.ContentType == "" {
		return fmt.Errorf("page %d has no content type", len(w.pages)+1)
	}
	var sb strings.Builder
	sb.WriteString("data:")
	sb.WriteString(p.ContentType)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(p.Data))
	w.pages = append(w.pages, template.URL(sb.String()))
	return nil
}

// Finish loads the pages into a blank tab and prints them at 20×11.25 in with no margins
func (w *ChromePDFWriter) Finish(ctx context.Context) ([]byte, error) {
	if len(w.pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	var html strings.Builder
	err := chromePagesTemplate.Execute(&html, map[string]any{
		"Title":  w.meta.Title,
		"Width":  render.PageWidth,
		"Height": render.PageHeight,
		"Pages":  w.pages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build page HTML: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, chromePrintTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	chromePath := w.chromePath
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html.String()).Do(ctx)
		}),
		// Wait for every data URL to decode
		chromedp.Evaluate(`Promise.all(Array.from(document.images).map(img => img.decode().catch(() => null))).then(() => true)`, nil,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams { return p.WithAwaitPromise(true) }),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 1920×1080 px at 96 dpi = 20in × 11.25in
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(float64(render.PageWidth) / 96).
				WithPaperHeight(float64(render.PageHeight) / 96).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdfBuf, nil
}
