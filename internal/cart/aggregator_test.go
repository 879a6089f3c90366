package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
	"github.com/asb-digital/storefront-engine/internal/kvstore"
	"github.com/asb-digital/storefront-engine/internal/observability"
)

func testRecord() catalogue.CatalogueRecord {
	return catalogue.CatalogueRecord{
		ID:       "cat-1",
		BodyType: catalogue.TypeRef{ID: "bt-1", Name: "Dump Truck"},
		Sizes:    []catalogue.Size{{SizeType: catalogue.TypeRef{Name: "Standard"}}},
	}
}

func testVariant(id string) *catalogue.VariantCombination {
	return &catalogue.VariantCombination{
		CombinationID:     id,
		Price:             "1000",
		VariantSelections: map[string]string{"color": "red"},
	}
}

func newTestAggregator(t *testing.T) (*Aggregator, *kvstore.MemoryClient) {
	t.Helper()
	store := kvstore.NewMemoryClient()
	return New(context.Background(), store, observability.Nop(), ""), store
}

func TestLineID(t *testing.T) {
	assert.Equal(t, "cat-1-v1", LineID("cat-1", testVariant("v1")))
	assert.Equal(t, "catalogue-cat-1", LineID("cat-1", nil))
}

func TestAggregator_AddNewLine(t *testing.T) {
	agg, _ := newTestAggregator(t)

	line, err := agg.Add(context.Background(), testRecord(), testVariant("v1"))
	require.NoError(t, err)
	assert.Equal(t, "cat-1-v1", line.ID)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, 1, agg.Count())
}

func TestAggregator_DuplicateAddIncrementsQuantity(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	_, err := agg.Add(ctx, testRecord(), testVariant("v1"))
	require.NoError(t, err)
	line, err := agg.Add(ctx, testRecord(), testVariant("v1"))
	require.NoError(t, err)

	assert.Equal(t, 2, line.Quantity)
	require.Len(t, agg.Lines(), 1)
	assert.Equal(t, 2, agg.Count())
}

func TestAggregator_DistinctVariantsAreDistinctLines(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	_, err := agg.Add(ctx, testRecord(), testVariant("v1"))
	require.NoError(t, err)
	_, err = agg.Add(ctx, testRecord(), testVariant("v2"))
	require.NoError(t, err)
	_, err = agg.Add(ctx, testRecord(), nil)
	require.NoError(t, err)

	assert.Len(t, agg.Lines(), 3)
	assert.Equal(t, 3, agg.Count())
}

func TestAggregator_LinesAreSnapshots(t *testing.T) {
	agg, _ := newTestAggregator(t)

	rec := testRecord()
	variant := testVariant("v1")
	_, err := agg.Add(context.Background(), rec, variant)
	require.NoError(t, err)

	// Mutating the caller's copies must not reach into the cart.
	rec.Sizes[0].SizeType.Name = "mutated"
	variant.VariantSelections["color"] = "mutated"

	lines := agg.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Standard", lines[0].Catalogue.Sizes[0].SizeType.Name)
	assert.Equal(t, "red", lines[0].Variant.VariantSelections["color"])
}

func TestAggregator_RemoveLine(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	line, err := agg.Add(ctx, testRecord(), testVariant("v1"))
	require.NoError(t, err)

	require.NoError(t, agg.Remove(ctx, line.ID))
	assert.Empty(t, agg.Lines())
	assert.Equal(t, 0, agg.Count())
}

func TestAggregator_RemoveUnknownLineIsNoOp(t *testing.T) {
	agg, _ := newTestAggregator(t)
	assert.NoError(t, agg.Remove(context.Background(), "nope"))
}

func TestAggregator_SetQuantity(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	line, err := agg.Add(ctx, testRecord(), testVariant("v1"))
	require.NoError(t, err)

	require.NoError(t, agg.SetQuantity(ctx, line.ID, 5))
	assert.Equal(t, 5, agg.Count())

	// Zero or negative quantity removes the line.
	require.NoError(t, agg.SetQuantity(ctx, line.ID, 0))
	assert.Empty(t, agg.Lines())
}

func TestAggregator_SetQuantityUnknownLineIsNoOp(t *testing.T) {
	agg, _ := newTestAggregator(t)
	assert.NoError(t, agg.SetQuantity(context.Background(), "nope", 3))
	assert.Equal(t, 0, agg.Count())
}

func TestAggregator_Clear(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	_, err := agg.Add(ctx, testRecord(), testVariant("v1"))
	require.NoError(t, err)
	_, err = agg.Add(ctx, testRecord(), nil)
	require.NoError(t, err)

	require.NoError(t, agg.Clear(ctx))
	assert.Empty(t, agg.Lines())
	assert.Equal(t, 0, agg.Count())
}

func TestAggregator_PersistenceRoundTrip(t *testing.T) {
	store := kvstore.NewMemoryClient()
	ctx := context.Background()

	first := New(ctx, store, observability.Nop(), "")
	_, err := first.Add(ctx, testRecord(), testVariant("v1"))
	require.NoError(t, err)
	_, err = first.Add(ctx, testRecord(), testVariant("v1"))
	require.NoError(t, err)

	// A fresh aggregator over the same store sees the persisted state.
	second := New(ctx, store, observability.Nop(), "")
	require.Len(t, second.Lines(), 1)
	assert.Equal(t, 2, second.Count())
	assert.Equal(t, "cat-1-v1", second.Lines()[0].ID)
}

func TestAggregator_CorruptStateStartsEmpty(t *testing.T) {
	store := kvstore.NewMemoryClient()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, DefaultStoreKey, []byte("{not json"), 0))

	agg := New(ctx, store, observability.Nop(), "")
	assert.Empty(t, agg.Lines())

	// The cart remains usable after recovery.
	_, err := agg.Add(ctx, testRecord(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, agg.Count())
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	store := kvstore.NewMemoryClient()
	mgr := NewManager(store, observability.Nop(), "")
	ctx := context.Background()

	_, err := mgr.Cart(ctx, "alpha").Add(ctx, testRecord(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, mgr.Cart(ctx, "alpha").Count())
	assert.Equal(t, 0, mgr.Cart(ctx, "beta").Count())
}

func TestManager_EmptySessionFallsBackToAnonymous(t *testing.T) {
	store := kvstore.NewMemoryClient()
	mgr := NewManager(store, observability.Nop(), "")
	ctx := context.Background()

	_, err := mgr.Cart(ctx, "").Add(ctx, testRecord(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, mgr.Cart(ctx, "anonymous").Count())
}
