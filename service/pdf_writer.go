package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"happywrap-deck/render"

	"github.com/jung-kurt/gofpdf"
)

// PDF page size in points; 1920×1080 px at 96 dpi
const (
	pdfPageWidthPt  = render.PageWidth * 72.0 / 96.0
	pdfPageHeightPt = render.PageHeight * 72.0 / 96.0
)

// DocumentMeta is written into the output document
type DocumentMeta struct {
	Title     string
	CreatedAt time.Time
}

// DocumentWriter assembles encoded pages into one document. Every page has the same size.
type DocumentWriter interface {
	AddPage(p *EncodedPage) error
	Finish(ctx context.Context) ([]byte, error)
}

// DocumentWriterFactory starts a new document
type DocumentWriterFactory func(meta DocumentMeta) DocumentWriter

// GofpdfWriter embeds each page image full-bleed on its own landscape PDF page
type GofpdfWriter struct {
	pdf   *gofpdf.Fpdf
	pages int
}

var _ DocumentWriter = (*GofpdfWriter)(nil)

// NewGofpdfWriter is a DocumentWriterFactory
func NewGofpdfWriter(meta DocumentMeta) DocumentWriter {
	// gofpdf swaps Wd and Ht for landscape, so the size is given portrait
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pdfPageHeightPt, Ht: pdfPageWidthPt},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(meta.Title, true)
	pdf.SetCreator("happywrap-deck", true)
	pdf.SetCatalogSort(true)
	if !meta.CreatedAt.IsZero() {
		pdf.SetCreationDate(meta.CreatedAt)
	}
	return &GofpdfWriter{pdf: pdf}
}

// AddPage starts a new page and draws p over all of it
func (w *GofpdfWriter) AddPage(p *EncodedPage) error {
	var imageType string
	switch p.Format {
	case FormatJPEG:
		imageType = "JPG"
	case FormatPNG:
		imageType = "PNG"
	default:
		return fmt.Errorf("unsupported page format %q", p.Format)
	}

	w.pages++
	name := fmt.Sprintf("page-%d", w.pages)
	opts := gofpdf.ImageOptions{ImageType: imageType}

	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(p.Data))
	w.pdf.AddPage()
	w.pdf.ImageOptions(name, 0, 0, pdfPageWidthPt, pdfPageHeightPt, false, opts, 0, "")
	if err := w.pdf.Error(); err != nil {
		return fmt.Errorf("failed to add page %d: %w", w.pages, err)
	}
	return nil
}

// Finish serialises the document
func (w *GofpdfWriter) Finish(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w.pages == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}
