package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asb-digital/storefront-engine/cmd/storefront-api/middleware"
	"github.com/asb-digital/storefront-engine/internal/cart"
	"github.com/asb-digital/storefront-engine/internal/catalogue"
	"github.com/asb-digital/storefront-engine/internal/observability"
)

// CartHandler serves the session-scoped price-inquiry cart.
type CartHandler struct {
	logger *observability.Logger
	carts  *cart.Manager
	source CatalogueSource
}

// NewCartHandler creates a cart handler.
func NewCartHandler(logger *observability.Logger, carts *cart.Manager, source CatalogueSource) *CartHandler {
	return &CartHandler{logger: logger, carts: carts, source: source}
}

// CartView is the cart payload returned to clients.
type CartView struct {
	Lines []cart.Line `json:"lines"`
	Count int         `json:"count"`
}

// AddItemRequest is the body for adding a product (and optional variant)
// to the cart.
type AddItemRequest struct {
	CatalogueID   string `json:"catalogueId"`
	CombinationID string `json:"combinationId,omitempty"`
}

// UpdateItemRequest is the body for overwriting a line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	agg := h.session(r)
	respondData(w, CartView{Lines: agg.Lines(), Count: agg.Count()})
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CatalogueID == "" {
		respondError(w, http.StatusBadRequest, "catalogueId is required")
		return
	}

	rec := h.source.CatalogueByID(ctx, req.CatalogueID)
	if rec == nil {
		respondError(w, http.StatusNotFound, "catalogue not found")
		return
	}

	variant, ok := h.resolveVariant(r, req)
	if !ok {
		respondError(w, http.StatusNotFound, "variant combination not found")
		return
	}

	agg := h.session(r)
	line, err := agg.Add(ctx, *rec, variant)
	if err != nil {
		h.logger.Error().Err(err).Msg("Cart add failed")
		respondError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	respondData(w, line)
}

// UpdateItem handles PUT /cart/items/{lineId}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineId")

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agg := h.session(r)
	if err := agg.SetQuantity(r.Context(), lineID, req.Quantity); err != nil {
		h.logger.Error().Err(err).Str("line_id", lineID).Msg("Cart update failed")
		respondError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	respondData(w, CartView{Lines: agg.Lines(), Count: agg.Count()})
}

// RemoveItem handles DELETE /cart/items/{lineId}. Removing an unknown
// line succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineId")

	agg := h.session(r)
	if err := agg.Remove(r.Context(), lineID); err != nil {
		h.logger.Error().Err(err).Str("line_id", lineID).Msg("Cart remove failed")
		respondError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	respondData(w, CartView{Lines: agg.Lines(), Count: agg.Count()})
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	agg := h.session(r)
	if err := agg.Clear(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Cart clear failed")
		respondError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}
	respondData(w, CartView{Lines: agg.Lines(), Count: 0})
}

func (h *CartHandler) session(r *http.Request) *cart.Aggregator {
	return h.carts.Cart(r.Context(), middleware.SessionFromContext(r.Context()))
}

// resolveVariant looks up the requested variant combination; ok is false
// when a combination id was given but not found.
func (h *CartHandler) resolveVariant(r *http.Request, req AddItemRequest) (*catalogue.VariantCombination, bool) {
	if req.CombinationID == "" {
		return nil, true
	}
	for _, v := range h.source.Variants(r.Context(), req.CatalogueID) {
		if v.CombinationID == req.CombinationID {
			return &v, true
		}
	}
	return nil, false
}
