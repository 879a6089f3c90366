package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/asb-digital/storefront-engine/internal/observability"
	"github.com/asb-digital/storefront-engine/internal/search"
	"github.com/asb-digital/storefront-engine/internal/variants"
)

// CatalogueHandler serves catalogue browsing, search and variant
// filtering.
type CatalogueHandler struct {
	logger          *observability.Logger
	source          CatalogueSource
	options         *variants.OptionCache
	defaultPageSize int
	maxPageSize     int
}

// NewCatalogueHandler creates a catalogue handler.
func NewCatalogueHandler(logger *observability.Logger, source CatalogueSource, options *variants.OptionCache, defaultPageSize, maxPageSize int) *CatalogueHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = 100
	}
	if maxPageSize <= 0 {
		maxPageSize = 500
	}
	return &CatalogueHandler{
		logger:          logger,
		source:          source,
		options:         options,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// List handles GET /catalogues?page&limit&search.
func (h *CatalogueHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", h.defaultPageSize)
	if limit < 1 {
		limit = h.defaultPageSize
	}
	if limit > h.maxPageSize {
		limit = h.maxPageSize
	}
	term := r.URL.Query().Get("search")

	records := search.Search(h.source.Catalogues(ctx), term)

	total := len(records)
	pages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	respondPage(w, records[start:end], Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	})
}

// Get handles GET /catalogues/{id}.
func (h *CatalogueHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec := h.source.CatalogueByID(r.Context(), id)
	if rec == nil {
		respondError(w, http.StatusNotFound, "catalogue not found")
		return
	}
	respondData(w, rec)
}

// Options handles GET /catalogues/{id}/options: the derived chassis
// options and variant option set for the record's combinations.
func (h *CatalogueHandler) Options(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if h.source.CatalogueByID(ctx, id) == nil {
		respondError(w, http.StatusNotFound, "catalogue not found")
		return
	}

	combinations := h.source.Variants(ctx, id)
	respondData(w, h.options.Options(combinations))
}

// FilterVariants handles POST /catalogues/{id}/variants/filter.
func (h *CatalogueHandler) FilterVariants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if h.source.CatalogueByID(ctx, id) == nil {
		respondError(w, http.StatusNotFound, "catalogue not found")
		return
	}

	var sel variants.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	combinations := h.source.Variants(ctx, id)
	filtered := variants.Filter(combinations, sel)

	h.logger.Debug().
		Str("catalogue_id", id).
		Int("total", len(combinations)).
		Int("matched", len(filtered)).
		Msg("Variant filter applied")

	respondData(w, filtered)
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
