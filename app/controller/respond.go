package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"happywrap-deck/logger"
	"happywrap-deck/models"
	"happywrap-deck/repository"
	"happywrap-deck/service"

	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; hampers embed full item records
const maxBodyBytes = 8 << 20

// statusClientClosedRequest is logged when the caller goes away mid-request
const statusClientClosedRequest = 499

// errBadRequest marks body and query errors
var errBadRequest = errors.New("bad request")

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondErr maps a service error to its HTTP status
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var exportErr *service.ExportError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, models.ErrInvalidSlide),
		errors.Is(err, models.ErrInvalidMove):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrDeckNotFound),
		errors.Is(err, models.ErrSlideNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoSlides):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled):
		log.Info("request cancelled by client")
		w.WriteHeader(statusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		// middleware.Timeout answers 504
		log.Warn("⚠️ request timed out", zap.Error(err))
	case errors.As(err, &exportErr):
		log.Error("❌ export failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("Export failed: %d page(s) could not be rendered", len(exportErr.Failed)))
	default:
		log.Error("❌ request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// readBody returns the request body; an empty or whitespace body yields nil
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: request body is empty", errBadRequest)
	}
	return unmarshalBody(data, v)
}

func unmarshalBody(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		if errors.Is(err, models.ErrInvalidSlide) {
			return err
		}
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	return nil
}

func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errBadRequest, key)
	}
	return v, nil
}

// sendDocument writes a finished export as a download
func sendDocument(w http.ResponseWriter, doc *service.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Header().Set("X-Page-Count", strconv.Itoa(doc.PageCount))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Data)
}
