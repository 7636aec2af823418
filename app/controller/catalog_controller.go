package controller

import (
	"net/http"

	"happywrap-deck/service"
)

// CatalogController serves the product picker
type CatalogController struct {
	catalog service.CatalogProvider
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog service.CatalogProvider) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// ListItems handles GET /api/catalog/items?q=
func (c *CatalogController) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := c.catalog.SearchItems(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":       items,
		"total_count": len(items),
	})
}
