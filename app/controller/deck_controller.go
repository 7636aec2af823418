package controller

import (
	"net/http"

	"happywrap-deck/logger"
	"happywrap-deck/models"
	"happywrap-deck/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DeckController handles the deck editor endpoints
type DeckController struct {
	decks *service.DeckService
}

// NewDeckController creates a new DeckController
func NewDeckController(decks *service.DeckService) *DeckController {
	return &DeckController{decks: decks}
}

type createDeckRequest struct {
	Details models.Details `json:"details"`
}

type reorderRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// CreateDeck handles POST /api/decks; the body is optional
func (c *DeckController) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	data, err := readBody(w, r)
	if err == nil && data != nil {
		err = unmarshalBody(data, &req)
	}
	if err != nil {
		respondErr(w, r, err)
		return
	}

	deck, err := c.decks.CreateDeck(r.Context(), req.Details)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, deck)
}

// GetDeck handles GET /api/decks/{id}
func (c *DeckController) GetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := c.decks.GetDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /api/decks/{id}
func (c *DeckController) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := c.decks.DeleteDeck(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateDetails handles PUT /api/decks/{id}/details
func (c *DeckController) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	var details models.Details
	if err := decodeJSON(w, r, &details); err != nil {
		respondErr(w, r, err)
		return
	}
	deck, err := c.decks.UpdateDetails(r.Context(), chi.URLParam(r, "id"), details)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

// AddSlide handles POST /api/decks/{id}/slides. An empty body adds the default catalog item.
func (c *DeckController) AddSlide(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var slide *models.Slide
	if data != nil {
		slide = &models.Slide{}
		if err := unmarshalBody(data, slide); err != nil {
			respondErr(w, r, err)
			return
		}
	}

	deck, err := c.decks.AddSlide(r.Context(), chi.URLParam(r, "id"), slide)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, deck)
}

// ReplaceSlide handles PUT /api/decks/{id}/slides/{slideID}
func (c *DeckController) ReplaceSlide(w http.ResponseWriter, r *http.Request) {
	var slide models.Slide
	if err := decodeJSON(w, r, &slide); err != nil {
		respondErr(w, r, err)
		return
	}
	deck, err := c.decks.ReplaceSlide(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "slideID"), slide)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

// DeleteSlide handles DELETE /api/decks/{id}/slides/{slideID}
func (c *DeckController) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	deck, err := c.decks.DeleteSlide(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "slideID"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

// SelectSlide handles POST /api/decks/{id}/slides/{slideID}/select
func (c *DeckController) SelectSlide(w http.ResponseWriter, r *http.Request) {
	deck, err := c.decks.SelectSlide(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "slideID"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

// ReorderSlides handles POST /api/decks/{id}/slides/reorder with {"from": i, "to": j}
func (c *DeckController) ReorderSlides(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	if req.From == nil || req.To == nil {
		respondError(w, http.StatusBadRequest, "from and to are required")
		return
	}
	deck, err := c.decks.MoveSlide(r.Context(), chi.URLParam(r, "id"), *req.From, *req.To)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

// PreviewSlide handles GET /api/decks/{id}/slides/{slideID}/preview.png?width=
func (c *DeckController) PreviewSlide(w http.ResponseWriter, r *http.Request) {
	width, err := queryInt(r, "width", 0)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	page, err := c.decks.PreviewSlide(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "slideID"), width)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", page.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(page.Data)
}

// ExportDeck handles GET /api/decks/{id}/export
func (c *DeckController) ExportDeck(w http.ResponseWriter, r *http.Request) {
	doc, err := c.decks.ExportDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("✓ deck exported",
		zap.String("deck_id", chi.URLParam(r, "id")),
		zap.String("file", doc.FileName),
		zap.Int("pages", doc.PageCount),
	)
	sendDocument(w, doc)
}
