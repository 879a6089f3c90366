package handlers

import (
	"context"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
)

// CatalogueSource is the catalogue collaborator handlers read from.
// Implementations degrade fetch failures to empty results.
type CatalogueSource interface {
	Catalogues(ctx context.Context) []catalogue.CatalogueRecord
	CatalogueByID(ctx context.Context, id string) *catalogue.CatalogueRecord
	Variants(ctx context.Context, catalogueID string) []catalogue.VariantCombination
}
