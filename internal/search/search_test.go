package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
)

func record(id, bodyName string) catalogue.CatalogueRecord {
	return catalogue.CatalogueRecord{ID: id, BodyType: catalogue.TypeRef{Name: bodyName}}
}

func TestSearch_EmptyTermReturnsInputUnchanged(t *testing.T) {
	records := []catalogue.CatalogueRecord{record("a", "Dump Truck"), record("b", "Flatbed")}

	got := Search(records, "   ")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestSearch_OrdersByDescendingScore(t *testing.T) {
	records := []catalogue.CatalogueRecord{
		record("partial", "Dumper"),
		record("exact", "Dump"),
	}

	got := Search(records, "dump")
	require.Len(t, got, 2)
	assert.Equal(t, "exact", got[0].ID)
	assert.Equal(t, "partial", got[1].ID)
}

func TestSearch_ExcludesNonMatches(t *testing.T) {
	records := []catalogue.CatalogueRecord{
		record("a", "Dump Truck"),
		record("b", "Qqq"),
	}

	got := Search(records, "dump")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestSearch_TiesKeepInputOrder(t *testing.T) {
	records := []catalogue.CatalogueRecord{
		record("first", "Dump Truck"),
		record("second", "Dump Trailer"),
	}

	got := Search(records, "dump")
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	records := []catalogue.CatalogueRecord{
		record("b", "Flatbed"),
		record("a", "Dump"),
	}

	_ = Search(records, "dump")
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
}

func TestSearch_Reentrant(t *testing.T) {
	records := []catalogue.CatalogueRecord{
		record("a", "Dump Truck"),
		record("b", "Dump"),
	}

	first := Search(records, "dump")
	second := Search(records, "dump")
	assert.Equal(t, first, second)
}

func TestSearch_EmptyCatalogue(t *testing.T) {
	assert.Empty(t, Search(nil, "dump"))
	assert.Empty(t, Search([]catalogue.CatalogueRecord{}, "dump"))
}
