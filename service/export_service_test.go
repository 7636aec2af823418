package service

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"happywrap-deck/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeRenderer paints a tiny page and records the option number it was given
type fakeRenderer struct {
	mu      sync.Mutex
	calls   []renderCall
	failIDs map[string]error
	onCall  func(models.Slide)
}

type renderCall struct {
	SlideID string
	Option  int
	Client  string
}

func (f *fakeRenderer) RenderSlide(_ context.Context, s models.Slide, details *models.Details, option int) (*image.RGBA, error) {
	f.mu.Lock()
	f.calls = append(f.calls, renderCall{SlideID: s.ID, Option: option, Client: details.ClientName})
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall(s)
	}
	if err := f.failIDs[s.ID]; err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, 16, 9))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetRGBA(0, 0, color.RGBA{R: uint8(option), A: 0xff})
	return img, nil
}

// recordingWriter keeps the pages it receives
type recordingWriter struct {
	meta  DocumentMeta
	pages []*EncodedPage
}

func (w *recordingWriter) AddPage(p *EncodedPage) error {
	w.pages = append(w.pages, p)
	return nil
}

func (w *recordingWriter) Finish(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte("%PDF-fake"), nil
}

func newTestExportService(t *testing.T, r SlideRenderer) (*ExportService, *[]*recordingWriter) {
	t.Helper()
	var writers []*recordingWriter
	factory := func(meta DocumentMeta) DocumentWriter {
		w := &recordingWriter{meta: meta}
		writers = append(writers, w)
		return w
	}
	svc := NewExportService(r, factory, FormatPNG, 90, zaptest.NewLogger(t))
	svc.Now = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }
	return svc, &writers
}

func userSlides(n int) []models.Slide {
	out := make([]models.Slide, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.NewItemSlide(models.Item{
			ID:          "item",
			Name:        "Vietri Copper Bottle",
			ClientPrice: decimal.NewFromInt(999),
		}))
	}
	return out
}

func TestSequence(t *testing.T) {
	slides := userSlides(3)
	seq := Sequence(slides)

	prefix := models.PrefixTemplateSlides()
	suffix := models.SuffixTemplateSlides()
	require.Len(t, seq, len(prefix)+3+len(suffix))

	for i := range prefix {
		assert.True(t, seq[i].Slide.IsTemplate())
		assert.Zero(t, seq[i].Option)
	}
	for i, s := range slides {
		entry := seq[len(prefix)+i]
		assert.Equal(t, s.ID, entry.Slide.ID)
		assert.Equal(t, i+1, entry.Option)
	}
	last := seq[len(seq)-1]
	assert.True(t, last.Slide.IsTemplate())
	assert.Zero(t, last.Option)
}

func TestExport_Success(t *testing.T) {
	r := &fakeRenderer{}
	svc, writers := newTestExportService(t, r)
	slides := userSlides(2)

	doc, err := svc.Export(context.Background(), ExportRequest{
		Slides:  slides,
		Details: models.Details{ClientName: "Acme Corp"},
	})
	require.NoError(t, err)

	total := len(models.PrefixTemplateSlides()) + 2 + len(models.SuffixTemplateSlides())
	assert.Equal(t, "Acme-Corp 2025-03-14.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, total, doc.PageCount)
	assert.Equal(t, []byte("%PDF-fake"), doc.Data)

	require.Len(t, *writers, 1)
	w := (*writers)[0]
	assert.Equal(t, "Acme Corp", w.meta.Title)
	assert.Len(t, w.pages, total)
	for _, p := range w.pages {
		assert.Equal(t, FormatPNG, p.Format)
	}

	var options []int
	for _, c := range r.calls {
		if c.Option > 0 {
			options = append(options, c.Option)
		}
		assert.Equal(t, "Acme Corp", c.Client)
	}
	assert.Equal(t, []int{1, 2}, options)
}

func TestExport_EmptyNameUsesFallback(t *testing.T) {
	svc, _ := newTestExportService(t, &fakeRenderer{})
	doc, err := svc.Export(context.Background(), ExportRequest{Slides: userSlides(1)})
	require.NoError(t, err)
	assert.Equal(t, "Client 2025-03-14.pdf", doc.FileName)
}

func TestExport_NoUserSlides(t *testing.T) {
	svc, writers := newTestExportService(t, &fakeRenderer{})

	_, err := svc.Export(context.Background(), ExportRequest{})
	assert.ErrorIs(t, err, ErrNoSlides)

	// template slides passed in by the caller do not count
	_, err = svc.Export(context.Background(), ExportRequest{Slides: models.PrefixTemplateSlides()})
	assert.ErrorIs(t, err, ErrNoSlides)
	assert.Empty(t, *writers)
}

func TestExport_PageFailureAttemptsEverything(t *testing.T) {
	slides := userSlides(3)
	r := &fakeRenderer{failIDs: map[string]error{
		slides[0].ID: errors.New("boom"),
		slides[2].ID: errors.New("bang"),
	}}
	svc, _ := newTestExportService(t, r)

	doc, err := svc.Export(context.Background(), ExportRequest{Slides: slides})
	require.Error(t, err)
	assert.Nil(t, doc)

	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	require.Len(t, exportErr.Failed, 2)
	prefix := len(models.PrefixTemplateSlides())
	assert.Equal(t, prefix+1, exportErr.Failed[0].Page)
	assert.Equal(t, slides[2].ID, exportErr.Failed[1].SlideID)

	total := prefix + 3 + len(models.SuffixTemplateSlides())
	assert.Len(t, r.calls, total, "every page is attempted")
}

func TestExport_SnapshotIgnoresLaterEdits(t *testing.T) {
	slides := userSlides(2)
	hamper := models.NewHamperSlide(models.Hamper{Items: []models.Item{{ID: "a", Name: "A"}}})
	slides = append(slides, hamper)

	r := &fakeRenderer{}
	r.onCall = func(s models.Slide) {
		// mutate the caller's slice mid-export
		slides[0].ID = "mutated"
	}
	svc, _ := newTestExportService(t, r)

	_, err := svc.Export(context.Background(), ExportRequest{Slides: slides})
	require.NoError(t, err)
	for _, c := range r.calls {
		assert.NotEqual(t, "mutated", c.SlideID)
	}
}

func TestExport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &fakeRenderer{}
	r.onCall = func(models.Slide) { cancel() }
	svc, _ := newTestExportService(t, r)

	doc, err := svc.Export(ctx, ExportRequest{Slides: userSlides(1)})
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, r.calls, 1)
}

func TestRenderPreview(t *testing.T) {
	r := &fakeRenderer{}
	svc, _ := newTestExportService(t, r)
	slides := userSlides(3)

	page, err := svc.RenderPreview(context.Background(), slides, models.Details{}, slides[1].ID, 8)
	require.NoError(t, err)
	assert.Equal(t, "image/png", page.ContentType)
	assert.Equal(t, 8, page.Width)
	require.Len(t, r.calls, 1)
	assert.Equal(t, 2, r.calls[0].Option)

	_, err = svc.RenderPreview(context.Background(), slides, models.Details{}, "missing", 0)
	assert.ErrorIs(t, err, models.ErrSlideNotFound)
}
