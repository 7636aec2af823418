package service

import (
	"context"
	"testing"

	"happywrap-deck/models"
	"happywrap-deck/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestDeckService(t *testing.T) (*DeckService, *fakeRenderer) {
	t.Helper()
	r := &fakeRenderer{}
	exporter, _ := newTestExportService(t, r)
	catalog := NewCatalogService(nil, nil, zaptest.NewLogger(t))
	return NewDeckService(repository.NewDeckRepository(), catalog, exporter, zaptest.NewLogger(t)), r
}

func TestDeckService_Editing(t *testing.T) {
	svc, _ := newTestDeckService(t)
	ctx := context.Background()

	deck, err := svc.CreateDeck(ctx, models.Details{ClientName: "Acme"})
	require.NoError(t, err)
	assert.Nil(t, deck.ActiveSlideID)

	// nil adds the default catalog item
	deck, err = svc.AddSlide(ctx, deck.ID, nil)
	require.NoError(t, err)
	require.Len(t, deck.Slides, 1)
	item, ok := deck.Slides[0].AsItem()
	require.True(t, ok)
	assert.Equal(t, "Glory Mixer Grinder", item.Name)
	first := deck.Slides[0].ID
	assert.Equal(t, first, *deck.ActiveSlideID)

	hamper := models.NewHamperSlide(models.Hamper{Items: []models.Item{item, item}})
	deck, err = svc.AddSlide(ctx, deck.ID, &hamper)
	require.NoError(t, err)
	assert.Equal(t, hamper.ID, *deck.ActiveSlideID)

	deck, err = svc.SelectSlide(ctx, deck.ID, first)
	require.NoError(t, err)
	assert.Equal(t, first, *deck.ActiveSlideID)

	deck, err = svc.MoveSlide(ctx, deck.ID, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{hamper.ID, first}, []string{deck.Slides[0].ID, deck.Slides[1].ID})

	_, err = svc.MoveSlide(ctx, deck.ID, 0, 5)
	assert.ErrorIs(t, err, models.ErrInvalidMove)

	deck, err = svc.DeleteSlide(ctx, deck.ID, first)
	require.NoError(t, err)
	require.NotNil(t, deck.ActiveSlideID)
	assert.Equal(t, hamper.ID, *deck.ActiveSlideID)

	deck, err = svc.UpdateDetails(ctx, deck.ID, models.Details{ClientName: "Globex", Quantity: 50})
	require.NoError(t, err)
	assert.Equal(t, "Globex", deck.Details.ClientName)
}

func TestDeckService_ReplaceSlide(t *testing.T) {
	svc, _ := newTestDeckService(t)
	ctx := context.Background()

	deck, err := svc.CreateDeck(ctx, models.Details{})
	require.NoError(t, err)
	deck, err = svc.AddSlide(ctx, deck.ID, nil)
	require.NoError(t, err)
	id := deck.Slides[0].ID

	replacement := models.NewHamperSlide(models.Hamper{})
	replacement.PriceMode = models.PriceModeUponRequest
	replacement.CustomPriceText = "On request"

	deck, err = svc.ReplaceSlide(ctx, deck.ID, id, replacement)
	require.NoError(t, err)
	got := deck.Slides[0]
	assert.Equal(t, id, got.ID, "id survives a content change")
	assert.Equal(t, models.SlideTypeHamper, got.Type())
	assert.Equal(t, models.PriceModeUponRequest, got.PriceMode)
	assert.Equal(t, "On request", got.CustomPriceText)

	tpl := models.PrefixTemplateSlides()[0]
	_, err = svc.ReplaceSlide(ctx, deck.ID, id, tpl)
	assert.ErrorIs(t, err, models.ErrInvalidSlide)

	_, err = svc.ReplaceSlide(ctx, deck.ID, "missing", replacement)
	assert.ErrorIs(t, err, models.ErrSlideNotFound)
}

func TestDeckService_UnknownDeck(t *testing.T) {
	svc, _ := newTestDeckService(t)
	ctx := context.Background()

	_, err := svc.GetDeck(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrDeckNotFound)
	_, err = svc.AddSlide(ctx, "nope", nil)
	assert.ErrorIs(t, err, repository.ErrDeckNotFound)
	_, err = svc.ExportDeck(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrDeckNotFound)
}

func TestDeckService_ExportAndPreview(t *testing.T) {
	svc, r := newTestDeckService(t)
	ctx := context.Background()

	deck, err := svc.CreateDeck(ctx, models.Details{ClientName: "Acme"})
	require.NoError(t, err)

	_, err = svc.ExportDeck(ctx, deck.ID)
	assert.ErrorIs(t, err, ErrNoSlides)

	deck, err = svc.AddSlide(ctx, deck.ID, nil)
	require.NoError(t, err)

	doc, err := svc.ExportDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme 2025-03-14.pdf", doc.FileName)

	r.calls = nil
	page, err := svc.PreviewSlide(ctx, deck.ID, deck.Slides[0].ID, 0)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, page.Format)
	assert.Equal(t, 1, r.calls[0].Option)
}
