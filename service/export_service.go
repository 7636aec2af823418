package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"happywrap-deck/metrics"
	"happywrap-deck/models"
	"happywrap-deck/utils"

	"go.uber.org/zap"
)

// ErrNoSlides is returned when an export has no user slides
var ErrNoSlides = errors.New("no slides to export")

// SlideRenderer paints one slide as a page
type SlideRenderer interface {
	RenderSlide(ctx context.Context, s models.Slide, details *models.Details, option int) (*image.RGBA, error)
}

// PageFailure records one page that produced no content
type PageFailure struct {
	Page    int // 1-based position in the exported sequence
	SlideID string
	Err     error
}

// ExportError reports every failed page of an export. No document is produced.
type ExportError struct {
	Failed []PageFailure
}

func (e *ExportError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		parts = append(parts, fmt.Sprintf("page %d (%s): %v", f.Page, f.SlideID, f.Err))
	}
	return fmt.Sprintf("export failed on %d page(s): %s", len(e.Failed), strings.Join(parts, "; "))
}

// ExportRequest is the deck content to export
type ExportRequest struct {
	Slides  []models.Slide
	Details models.Details
}

// Document is a finished export
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
	PageCount   int
}

// ExportService composes template and user slides into one PDF
type ExportService struct {
	renderer    SlideRenderer
	newWriter   DocumentWriterFactory
	pageFormat  string
	jpegQuality int
	logger      *zap.Logger

	// Now is the clock used for the file name and document metadata
	Now func() time.Time
}

// NewExportService creates an ExportService
func NewExportService(renderer SlideRenderer, newWriter DocumentWriterFactory, pageFormat string, jpegQuality int, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		renderer:    renderer,
		newWriter:   newWriter,
		pageFormat:  pageFormat,
		jpegQuality: jpegQuality,
		logger:      logger,
		Now:         time.Now,
	}
}

// ExportPage is one entry of the export sequence; Option is 0 for template pages
type ExportPage struct {
	Slide  models.Slide
	Option int
}

// Sequence returns prefix templates, the user slides and suffix templates in export
// order. Option numbers count user slides only, starting at 1.
func Sequence(userSlides []models.Slide) []ExportPage {
	prefix := models.PrefixTemplateSlides()
	suffix := models.SuffixTemplateSlides()

	seq := make([]ExportPage, 0, len(prefix)+len(userSlides)+len(suffix))
	for _, s := range prefix {
		seq = append(seq, ExportPage{Slide: s})
	}
	option := 0
	for _, s := range userSlides {
		option++
		seq = append(seq, ExportPage{Slide: s, Option: option})
	}
	for _, s := range suffix {
		seq = append(seq, ExportPage{Slide: s})
	}
	return seq
}

// Export renders every page and returns the finished document.
// Image failures degrade inside their page. Any page that cannot be produced at all
// fails the whole export, after the full sequence has been attempted.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*Document, error) {
	start := time.Now()
	status := "ok"
	defer func() {
		metrics.ExportsTotal.WithLabelValues(status).Inc()
		metrics.ExportDuration.Observe(time.Since(start).Seconds())
	}()

	// snapshot: later edits to the caller's slices must not reach this export
	userSlides := make([]models.Slide, 0, len(req.Slides))
	for _, sl := range req.Slides {
		if sl.IsTemplate() {
			continue
		}
		userSlides = append(userSlides, sl.Clone())
	}
	details := req.Details

	if len(userSlides) == 0 {
		status = "empty"
		return nil, ErrNoSlides
	}

	now := s.Now()
	fileName := utils.ExportFileName(details.ClientName, now, "pdf")
	writer := s.newWriter(DocumentMeta{Title: strings.TrimSpace(details.ClientName), CreatedAt: now})

	seq := Sequence(userSlides)
	log := s.logger.With(zap.String("file", fileName), zap.Int("pages", len(seq)))
	log.Info("📄 export started")

	var failed []PageFailure
	for i, entry := range seq {
		if err := ctx.Err(); err != nil {
			status = "cancelled"
			return nil, err
		}

		pageErr := s.renderPage(ctx, writer, entry, &details)
		if pageErr == nil {
			metrics.PagesRendered.WithLabelValues(string(entry.Slide.Type())).Inc()
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			status = "cancelled"
			return nil, ctxErr
		}
		log.Error("❌ page failed",
			zap.Int("page", i+1),
			zap.String("slide_id", entry.Slide.ID),
			zap.Error(pageErr),
		)
		failed = append(failed, PageFailure{Page: i + 1, SlideID: entry.Slide.ID, Err: pageErr})
	}

	if len(failed) > 0 {
		status = "failed"
		return nil, &ExportError{Failed: failed}
	}

	data, err := writer.Finish(ctx)
	if err != nil {
		status = "failed"
		if ctxErr := ctx.Err(); ctxErr != nil {
			status = "cancelled"
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to finish document: %w", err)
	}

	log.Info("✓ export finished", zap.Int("bytes", len(data)), zap.Duration("elapsed", time.Since(start)))
	return &Document{
		FileName:    fileName,
		ContentType: "application/pdf",
		Data:        data,
		PageCount:   len(seq),
	}, nil
}

func (s *ExportService) renderPage(ctx context.Context, writer DocumentWriter, entry ExportPage, details *models.Details) error {
	img, err := s.renderer.RenderSlide(ctx, entry.Slide, details, entry.Option)
	if err != nil {
		return err
	}
	encoded, err := EncodePage(img, s.pageFormat, s.jpegQuality)
	if err != nil {
		return err
	}
	return writer.AddPage(encoded)
}

// RenderPreview renders the user slide with id as a PNG, numbered by its position
// among userSlides. maxWidth > 0 downscales the preview.
func (s *ExportService) RenderPreview(ctx context.Context, userSlides []models.Slide, details models.Details, id string, maxWidth int) (*EncodedPage, error) {
	option := 0
	for _, sl := range userSlides {
		if sl.IsTemplate() {
			continue
		}
		option++
		if sl.ID != id {
			continue
		}
		img, err := s.renderer.RenderSlide(ctx, sl.Clone(), &details, option)
		if err != nil {
			return nil, err
		}
		return EncodePage(ScaleToWidth(img, maxWidth), FormatPNG, 0)
	}
	return nil, fmt.Errorf("%w: %s", models.ErrSlideNotFound, id)
}
