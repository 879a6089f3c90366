// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/asb-digital/storefront-engine/cmd/storefront-api/handlers"
	"github.com/asb-digital/storefront-engine/cmd/storefront-api/middleware"
	"github.com/asb-digital/storefront-engine/internal/cart"
	"github.com/asb-digital/storefront-engine/internal/config"
	"github.com/asb-digital/storefront-engine/internal/contact"
	"github.com/asb-digital/storefront-engine/internal/inquiry"
	"github.com/asb-digital/storefront-engine/internal/kvstore"
	"github.com/asb-digital/storefront-engine/internal/observability"
	"github.com/asb-digital/storefront-engine/internal/variants"
)

// Deps are the collaborators the router wires handlers to.
type Deps struct {
	Source CatalogueSource
	Store  kvstore.Client
}

// CatalogueSource aliases the handler-facing source interface.
type CatalogueSource = handlers.CatalogueSource

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))
	r.Use(middleware.Session())

	// Health check (unauthenticated)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"storefront-engine"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})

	// Service dependencies
	optionCache := variants.NewOptionCache(cfg.Search.OptionCacheSize)
	carts := cart.NewManager(deps.Store, logger, "")
	contacts := contact.NewStore(deps.Store, logger)
	inquiries := inquiry.NewClient(inquiry.ClientConfig{
		Endpoint: cfg.Inquiry.Endpoint,
		APIKey:   cfg.Inquiry.APIKey,
		Timeout:  cfg.Inquiry.Timeout,
	}, logger)

	// Handlers
	catalogueHandler := handlers.NewCatalogueHandler(logger, deps.Source, optionCache,
		cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	cartHandler := handlers.NewCartHandler(logger, carts, deps.Source)
	inquiryHandler := handlers.NewInquiryHandler(logger, inquiries, contacts, carts)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalogues", func(r chi.Router) {
			r.Get("/", catalogueHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", catalogueHandler.Get)
				r.Get("/options", catalogueHandler.Options)
				r.Post("/variants/filter", catalogueHandler.FilterVariants)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Route("/items/{lineId}", func(r chi.Router) {
				r.Put("/", cartHandler.UpdateItem)
				r.Delete("/", cartHandler.RemoveItem)
			})
		})

		r.Route("/inquiries", func(r chi.Router) {
			r.Post("/", inquiryHandler.Create)
			r.Get("/contact", inquiryHandler.Contact)
		})
	})

	return r
}
