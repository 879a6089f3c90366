package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/asb-digital/storefront-engine/cmd/storefront-api/middleware"
	"github.com/asb-digital/storefront-engine/internal/cart"
	"github.com/asb-digital/storefront-engine/internal/contact"
	"github.com/asb-digital/storefront-engine/internal/inquiry"
	"github.com/asb-digital/storefront-engine/internal/observability"
)

// InquiryHandler submits price inquiries and maintains the remembered
// contact identity.
type InquiryHandler struct {
	logger   *observability.Logger
	client   *inquiry.Client
	contacts *contact.Store
	carts    *cart.Manager
}

// NewInquiryHandler creates an inquiry handler.
func NewInquiryHandler(logger *observability.Logger, client *inquiry.Client, contacts *contact.Store, carts *cart.Manager) *InquiryHandler {
	return &InquiryHandler{
		logger:   logger,
		client:   client,
		contacts: contacts,
		carts:    carts,
	}
}

// Create handles POST /inquiries. On success the contact identity is
// remembered and the session cart is cleared.
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req inquiry.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.client.Submit(ctx, req)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Inquiry submission rejected")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Failure to remember the identity never fails the inquiry.
	if err := h.contacts.Remember(ctx, contact.Identity{
		InquiryType: req.InquiryType,
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Gender:      req.Gender,
		Email:       req.Email,
		Phone:       req.Phone,
	}); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to remember contact identity")
	}

	sessionID := middleware.SessionFromContext(ctx)
	if err := h.carts.Cart(ctx, sessionID).Clear(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to clear cart after inquiry")
	}

	respondData(w, resp)
}

// Contact handles GET /inquiries/contact: the remembered identity for
// form prefill, empty when nothing usable is stored.
func (h *InquiryHandler) Contact(w http.ResponseWriter, r *http.Request) {
	respondData(w, h.contacts.Recall(r.Context()))
}
