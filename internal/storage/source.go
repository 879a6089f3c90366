package storage

import (
	"context"
	"errors"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
	"github.com/asb-digital/storefront-engine/internal/observability"
)

// Lister is the read side of the catalogue repository the source needs.
type Lister interface {
	List(ctx context.Context) ([]catalogue.CatalogueRecord, error)
	GetByID(ctx context.Context, id string) (*catalogue.CatalogueRecord, error)
	VariantsByCatalogue(ctx context.Context, catalogueID string) ([]catalogue.VariantCombination, error)
}

// Source is the catalogue-source collaborator the engine consumes. Fetch
// failures degrade to empty results so search and filtering never see an
// error; failures are logged instead.
type Source struct {
	repo   Lister
	logger *observability.Logger
}

// NewSource creates a catalogue source over a repository.
func NewSource(repo Lister, logger *observability.Logger) *Source {
	return &Source{repo: repo, logger: logger}
}

// Catalogues returns all catalogue records, or an empty list on failure.
func (s *Source) Catalogues(ctx context.Context) []catalogue.CatalogueRecord {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Catalogue fetch failed, returning empty result")
		return []catalogue.CatalogueRecord{}
	}
	if records == nil {
		records = []catalogue.CatalogueRecord{}
	}
	return records
}

// CatalogueByID returns one record, or nil when missing or unreachable.
func (s *Source) CatalogueByID(ctx context.Context, id string) *catalogue.CatalogueRecord {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn().Err(err).Str("catalogue_id", id).Msg("Catalogue lookup failed")
		}
		return nil
	}
	return rec
}

// Variants returns a record's variant combinations, or an empty list on
// failure.
func (s *Source) Variants(ctx context.Context, catalogueID string) []catalogue.VariantCombination {
	variants, err := s.repo.VariantsByCatalogue(ctx, catalogueID)
	if err != nil {
		s.logger.Warn().Err(err).Str("catalogue_id", catalogueID).Msg("Variant fetch failed, returning empty result")
		return []catalogue.VariantCombination{}
	}
	if variants == nil {
		variants = []catalogue.VariantCombination{}
	}
	return variants
}
