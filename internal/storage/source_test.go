package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
	"github.com/asb-digital/storefront-engine/internal/observability"
)

// fakeLister serves canned responses or a fixed error.
type fakeLister struct {
	records []catalogue.CatalogueRecord
	vars    map[string][]catalogue.VariantCombination
	err     error
}

func (f *fakeLister) List(ctx context.Context) ([]catalogue.CatalogueRecord, error) {
	return f.records, f.err
}

func (f *fakeLister) GetByID(ctx context.Context, id string) (*catalogue.CatalogueRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeLister) VariantsByCatalogue(ctx context.Context, catalogueID string) ([]catalogue.VariantCombination, error) {
	return f.vars[catalogueID], f.err
}

func TestSource_Catalogues(t *testing.T) {
	src := NewSource(&fakeLister{records: []catalogue.CatalogueRecord{{ID: "cat-1"}}}, observability.Nop())

	records := src.Catalogues(context.Background())
	require.Len(t, records, 1)
	assert.Equal(t, "cat-1", records[0].ID)
}

func TestSource_CataloguesDegradesOnError(t *testing.T) {
	src := NewSource(&fakeLister{err: errors.New("connection refused")}, observability.Nop())

	records := src.Catalogues(context.Background())
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSource_CataloguesNeverNil(t *testing.T) {
	src := NewSource(&fakeLister{}, observability.Nop())
	assert.NotNil(t, src.Catalogues(context.Background()))
}

func TestSource_CatalogueByID(t *testing.T) {
	src := NewSource(&fakeLister{records: []catalogue.CatalogueRecord{{ID: "cat-1"}}}, observability.Nop())

	rec := src.CatalogueByID(context.Background(), "cat-1")
	require.NotNil(t, rec)
	assert.Equal(t, "cat-1", rec.ID)

	assert.Nil(t, src.CatalogueByID(context.Background(), "missing"))
}

func TestSource_CatalogueByIDDegradesOnError(t *testing.T) {
	src := NewSource(&fakeLister{err: errors.New("connection refused")}, observability.Nop())
	assert.Nil(t, src.CatalogueByID(context.Background(), "cat-1"))
}

func TestSource_Variants(t *testing.T) {
	src := NewSource(&fakeLister{
		vars: map[string][]catalogue.VariantCombination{
			"cat-1": {{CombinationID: "v1"}},
		},
	}, observability.Nop())

	variants := src.Variants(context.Background(), "cat-1")
	require.Len(t, variants, 1)
	assert.Equal(t, "v1", variants[0].CombinationID)

	// Unknown catalogue yields an empty, non-nil list.
	assert.NotNil(t, src.Variants(context.Background(), "missing"))
	assert.Empty(t, src.Variants(context.Background(), "missing"))
}

func TestSource_VariantsDegradesOnError(t *testing.T) {
	src := NewSource(&fakeLister{err: errors.New("connection refused")}, observability.Nop())

	variants := src.Variants(context.Background(), "cat-1")
	assert.NotNil(t, variants)
	assert.Empty(t, variants)
}
