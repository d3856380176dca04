package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/maltedev/marketplace-product-extractor/internal/database"
	"github.com/maltedev/marketplace-product-extractor/internal/extractor"
	"github.com/maltedev/marketplace-product-extractor/internal/models"
	"github.com/maltedev/marketplace-product-extractor/internal/service"
)

// RecordStore is the slice of the record store the API reads from.
// *database.DB satisfies it.
type RecordStore interface {
	GetRecord(ctx context.Context, id uuid.UUID) (*database.StoredRecord, error)
	GetRecordByURL(ctx context.Context, url string) (*database.StoredRecord, error)
	ListRecords(ctx context.Context, limit int) ([]*database.StoredRecord, error)
}

type Handlers struct {
	service *service.Service
	store   RecordStore
	logger  *slog.Logger
}

// NewHandlers builds the API handler set. store may be nil when no record
// store is configured; the stored-record endpoints then answer 503.
func NewHandlers(svc *service.Service, store RecordStore, logger *slog.Logger) *Handlers {
	return &Handlers{
		service: svc,
		store:   store,
		logger:  logger.With("component", "api"),
	}
}

// ExtractRequest asks for one product page to be extracted. When HTML is
// supplied the page is not fetched; URL then only labels the record.
type ExtractRequest struct {
	URL    string `json:"url"`
	HTML   string `json:"html,omitempty"`
	AsHTML bool   `json:"as_html,omitempty"`
}

// Extract handles product extraction requests.
func (h *Handlers) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	opts := extractor.Options{AsHTML: req.AsHTML}

	var (
		record *models.ProductRecord
		err    error
	)
	if req.HTML != "" {
		record, err = h.service.ExtractFromHTML(r.Context(), req.HTML, req.URL, opts)
	} else {
		record, err = h.service.ExtractFromURL(r.Context(), req.URL, opts)
	}
	if err != nil {
		h.logger.Error("extraction failed", "error", err, "url", req.URL)
		h.respondError(w, http.StatusBadGateway, "failed to extract product page")
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

// ListRecords returns the most recently stored records, or a single
// record when ?url= names a stored page.
func (h *Handlers) ListRecords(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.respondError(w, http.StatusServiceUnavailable, "record store is not configured")
		return
	}

	if url := r.URL.Query().Get("url"); url != "" {
		record, err := h.store.GetRecordByURL(r.Context(), url)
		if err != nil {
			if errors.Is(err, database.ErrRecordNotFound) {
				h.respondError(w, http.StatusNotFound, "record not found")
				return
			}
			h.logger.Error("failed to get record", "error", err, "url", url)
			h.respondError(w, http.StatusInternalServerError, "failed to get record")
			return
		}
		h.respondJSON(w, http.StatusOK, record)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.store.ListRecords(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list records", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	h.respondJSON(w, http.StatusOK, records)
}

// GetRecord returns one stored record by id.
func (h *Handlers) GetRecord(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.respondError(w, http.StatusServiceUnavailable, "record store is not configured")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "recordID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid record ID")
		return
	}

	record, err := h.store.GetRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			h.respondError(w, http.StatusNotFound, "record not found")
			return
		}
		h.logger.Error("failed to get record", "error", err, "id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to get record")
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
