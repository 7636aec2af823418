package repository

import (
	"context"

	"happywrap-deck/models"
)

// CatalogRepositoryInterface defines the contract for the product table
type CatalogRepositoryInterface interface {
	ListProducts(ctx context.Context) ([]models.Item, error)
}

// CatalogCacheInterface stores the resolved catalog between requests
type CatalogCacheInterface interface {
	GetItems(ctx context.Context) ([]models.Item, bool, error)
	SetItems(ctx context.Context, items []models.Item) error
	Invalidate(ctx context.Context) error
}

// DeckRepositoryInterface defines the contract for deck storage
type DeckRepositoryInterface interface {
	Create(ctx context.Context, deck *models.Deck) error
	Get(ctx context.Context, id string) (*models.Deck, error)
	// Update applies fn to the stored deck atomically and returns a snapshot of the result
	Update(ctx context.Context, id string, fn func(*models.Deck) error) (*models.Deck, error)
	Delete(ctx context.Context, id string) error
}
