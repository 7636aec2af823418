package controller

import (
	"net/http"

	"happywrap-deck/models"
	"happywrap-deck/service"
)

// ExportController exports decks the client holds itself
type ExportController struct {
	exporter service.Exporter
}

// NewExportController creates a new ExportController
func NewExportController(exporter service.Exporter) *ExportController {
	return &ExportController{exporter: exporter}
}

type exportRequest struct {
	Slides  []models.Slide `json:"slides"`
	Details models.Details `json:"details"`
}

// Export handles POST /api/export with {"slides": [...], "details": {...}}
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	doc, err := c.exporter.Export(r.Context(), service.ExportRequest{Slides: req.Slides, Details: req.Details})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	sendDocument(w, doc)
}
