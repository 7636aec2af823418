package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"happywrap-deck/models"
	"happywrap-deck/utils"

	"go.uber.org/zap"
)

// CatalogRepository reads products from Postgres
type CatalogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sql.DB, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{db: db, logger: logger}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

const listProductsQuery = `
	SELECT
		id,
		name,
		COALESCE(mrp, 0),
		COALESCE(hw_cost, 0),
		COALESCE(hw_with_gst, 0),
		COALESCE(client_price, 0),
		COALESCE(client_price_with_gst, 0),
		COALESCE(price_tag, ''),
		COALESCE(image_url, ''),
		COALESCE(category, ''),
		COALESCE(sub_category, ''),
		COALESCE(brand, '')
	FROM products
	WHERE is_active = true
	ORDER BY sort_order ASC, id ASC
`

// ListProducts returns every active product in catalog order
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.MRP,
			&item.HWCost,
			&item.HWWithGST,
			&item.ClientPrice,
			&item.ClientPriceWithGST,
			&item.PriceTag,
			&item.ImageURL,
			&item.Category,
			&item.SubCategory,
			&item.Brand,
		)
		if err != nil {
			r.logger.Warn("❌ skipping unreadable product row", zap.Error(err))
			continue
		}
		item.Name = strings.TrimSpace(item.Name)
		item.ImageURL = utils.NormalizeImageURL(item.ImageURL)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	r.logger.Debug("✓ products fetched", zap.Int("count", len(items)))
	return items, nil
}
