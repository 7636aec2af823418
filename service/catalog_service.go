package service

import (
	"context"
	"fmt"
	"strings"

	"happywrap-deck/metrics"
	"happywrap-deck/models"
	"happywrap-deck/repository"

	"go.uber.org/zap"
)

// CatalogSource is one place the product list can come from
type CatalogSource interface {
	Name() string
	FetchItems(ctx context.Context) ([]models.Item, error)
}

// CatalogProvider is what the deck editor needs from the catalog
type CatalogProvider interface {
	GetItems(ctx context.Context) ([]models.Item, error)
	SearchItems(ctx context.Context, query string) ([]models.Item, error)
	DefaultItem(ctx context.Context) (models.Item, error)
}

// PostgresSource adapts the product repository to a CatalogSource
type PostgresSource struct {
	repo repository.CatalogRepositoryInterface
}

// NewPostgresSource creates a PostgresSource
func NewPostgresSource(repo repository.CatalogRepositoryInterface) *PostgresSource {
	return &PostgresSource{repo: repo}
}

func (p *PostgresSource) Name() string { return "postgres" }

func (p *PostgresSource) FetchItems(ctx context.Context) ([]models.Item, error) {
	items, err := p.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("products table is empty")
	}
	return items, nil
}

// CatalogService resolves the catalog from its sources in order, falling back to
// the built-in sample when every source fails.
type CatalogService struct {
	sources []CatalogSource
	cache   repository.CatalogCacheInterface
	logger  *zap.Logger
}

// Ensure CatalogService implements CatalogProvider
var _ CatalogProvider = (*CatalogService)(nil)

// NewCatalogService creates a CatalogService. cache may be nil.
func NewCatalogService(sources []CatalogSource, cache repository.CatalogCacheInterface, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{sources: sources, cache: cache, logger: logger}
}

// GetItems returns the catalog, never failing unless ctx is done
func (s *CatalogService) GetItems(ctx context.Context) ([]models.Item, error) {
	if s.cache != nil {
		items, found, err := s.cache.GetItems(ctx)
		if err != nil {
			s.logger.Warn("⚠️ catalog cache read failed", zap.Error(err))
		} else if found {
			return items, nil
		}
	}

	for _, src := range s.sources {
		items, err := src.FetchItems(ctx)
		if err == nil {
			s.logger.Debug("✓ catalog loaded", zap.String("source", src.Name()), zap.Int("items", len(items)))
			s.store(ctx, items)
			return items, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		metrics.CatalogFallbacks.WithLabelValues(src.Name()).Inc()
		s.logger.Warn("⚠️ catalog source failed, falling back",
			zap.String("source", src.Name()),
			zap.Error(err),
		)
	}

	// the sample catalog is not cached so a recovered source is picked up on the next call
	return SampleSource{}.FetchItems(ctx)
}

func (s *CatalogService) store(ctx context.Context, items []models.Item) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetItems(ctx, items); err != nil {
		s.logger.Warn("⚠️ catalog cache write failed", zap.Error(err))
	}
}

// SearchItems returns the items whose name contains query, ignoring case.
// An empty query returns the whole catalog.
func (s *CatalogService) SearchItems(ctx context.Context, query string) ([]models.Item, error) {
	items, err := s.GetItems(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items, nil
	}
	matches := make([]models.Item, 0)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// DefaultItem is the item a new slide starts with
func (s *CatalogService) DefaultItem(ctx context.Context) (models.Item, error) {
	items, err := s.GetItems(ctx)
	if err != nil {
		return models.Item{}, err
	}
	if len(items) == 0 {
		return models.Item{}, fmt.Errorf("catalog is empty")
	}
	return items[0], nil
}
