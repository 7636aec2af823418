package service

import (
	"context"
	"fmt"

	"happywrap-deck/models"
	"happywrap-deck/repository"

	"go.uber.org/zap"
)

// Exporter turns slides into documents and previews
type Exporter interface {
	Export(ctx context.Context, req ExportRequest) (*Document, error)
	RenderPreview(ctx context.Context, userSlides []models.Slide, details models.Details, id string, maxWidth int) (*EncodedPage, error)
}

// Ensure ExportService implements Exporter
var _ Exporter = (*ExportService)(nil)

// DeckService applies editor operations to stored decks. Every method returns a
// snapshot; callers never hold a reference to the stored deck.
type DeckService struct {
	decks    repository.DeckRepositoryInterface
	catalog  CatalogProvider
	exporter Exporter
	logger   *zap.Logger
}

// NewDeckService creates a DeckService
func NewDeckService(decks repository.DeckRepositoryInterface, catalog CatalogProvider, exporter Exporter, logger *zap.Logger) *DeckService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeckService{decks: decks, catalog: catalog, exporter: exporter, logger: logger}
}

// CreateDeck starts an empty deck
func (s *DeckService) CreateDeck(ctx context.Context, details models.Details) (*models.Deck, error) {
	deck := models.NewDeck(details)
	if err := s.decks.Create(ctx, deck); err != nil {
		return nil, err
	}
	s.logger.Info("✓ deck created", zap.String("deck_id", deck.ID))
	return deck.Snapshot(), nil
}

// GetDeck returns the deck with id
func (s *DeckService) GetDeck(ctx context.Context, id string) (*models.Deck, error) {
	return s.decks.Get(ctx, id)
}

// DeleteDeck removes the deck with id
func (s *DeckService) DeleteDeck(ctx context.Context, id string) error {
	return s.decks.Delete(ctx, id)
}

// UpdateDetails replaces the deck's engagement details
func (s *DeckService) UpdateDetails(ctx context.Context, id string, details models.Details) (*models.Deck, error) {
	return s.decks.Update(ctx, id, func(d *models.Deck) error {
		d.UpdateDetails(details)
		return nil
	})
}

// AddSlide appends slide, or a slide showing the catalog's default item when slide is nil.
// The new slide becomes active.
func (s *DeckService) AddSlide(ctx context.Context, deckID string, slide *models.Slide) (*models.Deck, error) {
	var next models.Slide
	if slide == nil {
		item, err := s.catalog.DefaultItem(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to pick default item: %w", err)
		}
		next = models.NewItemSlide(item)
	} else {
		next = slide.Clone()
	}
	return s.decks.Update(ctx, deckID, func(d *models.Deck) error {
		return d.AddSlide(next)
	})
}

// ReplaceSlide swaps the content, price mode and price override of a slide, keeping its id
func (s *DeckService) ReplaceSlide(ctx context.Context, deckID, slideID string, slide models.Slide) (*models.Deck, error) {
	return s.decks.Update(ctx, deckID, func(d *models.Deck) error {
		_, err := d.UpdateSlide(slideID, func(current models.Slide) (models.Slide, error) {
			current = current.WithContent(slide.Content())
			current.PriceMode = slide.PriceMode
			current.CustomPriceText = slide.CustomPriceText
			return current, nil
		})
		return err
	})
}

// DeleteSlide removes a slide, repairing the active selection
func (s *DeckService) DeleteSlide(ctx context.Context, deckID, slideID string) (*models.Deck, error) {
	return s.decks.Update(ctx, deckID, func(d *models.Deck) error {
		return d.DeleteSlide(slideID)
	})
}

// SelectSlide makes a slide active
func (s *DeckService) SelectSlide(ctx context.Context, deckID, slideID string) (*models.Deck, error) {
	return s.decks.Update(ctx, deckID, func(d *models.Deck) error {
		return d.SelectSlide(slideID)
	})
}

// MoveSlide reorders slides by index
func (s *DeckService) MoveSlide(ctx context.Context, deckID string, from, to int) (*models.Deck, error) {
	return s.decks.Update(ctx, deckID, func(d *models.Deck) error {
		return d.MoveSlide(from, to)
	})
}

// ExportDeck renders a snapshot of the deck to PDF. Edits made while the export
// runs do not affect it.
func (s *DeckService) ExportDeck(ctx context.Context, deckID string) (*Document, error) {
	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, err
	}
	return s.exporter.Export(ctx, ExportRequest{Slides: deck.Slides, Details: deck.Details})
}

// PreviewSlide renders one slide of the deck as a PNG
func (s *DeckService) PreviewSlide(ctx context.Context, deckID, slideID string, maxWidth int) (*EncodedPage, error) {
	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, err
	}
	return s.exporter.RenderPreview(ctx, deck.Slides, deck.Details, slideID, maxWidth)
}
