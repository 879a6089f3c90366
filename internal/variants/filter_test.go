package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
)

func sampleCombinations() []catalogue.VariantCombination {
	return []catalogue.VariantCombination{
		{
			CombinationID:     "v1",
			ChassisData:       chassisA(),
			VariantSelections: map[string]string{"color": "red", "tarp": "manual"},
		},
		{
			CombinationID:     "v2",
			ChassisData:       chassisB(),
			VariantSelections: map[string]string{"color": "blue", "tarp": "manual"},
		},
		{
			CombinationID:     "v3",
			VariantSelections: map[string]string{"color": "red"},
		},
	}
}

func TestFilter_EmptySelectionReturnsInputUnchanged(t *testing.T) {
	combinations := sampleCombinations()
	got := Filter(combinations, Selection{})
	require.Len(t, got, 3)
	assert.Equal(t, "v1", got[0].CombinationID)
}

func TestFilter_ByChassisKey(t *testing.T) {
	got := Filter(sampleCombinations(), Selection{ChassisKeys: []string{ChassisKey(chassisA())}})
	require.Len(t, got, 1)
	assert.Equal(t, "v1", got[0].CombinationID)
}

func TestFilter_ChassislessVariantMatchesFallbackKey(t *testing.T) {
	got := Filter(sampleCombinations(), Selection{ChassisKeys: []string{"no-type_no-details"}})
	require.Len(t, got, 1)
	assert.Equal(t, "v3", got[0].CombinationID)
}

func TestFilter_ByVariantCategory(t *testing.T) {
	got := Filter(sampleCombinations(), Selection{Variants: map[string][]string{"color": {"red"}}})
	require.Len(t, got, 2)
	assert.Equal(t, "v1", got[0].CombinationID)
	assert.Equal(t, "v3", got[1].CombinationID)
}

func TestFilter_ValuesWithinCategoryAreOrEd(t *testing.T) {
	got := Filter(sampleCombinations(), Selection{Variants: map[string][]string{"color": {"red", "blue"}}})
	assert.Len(t, got, 3)
}

func TestFilter_CategoriesAreAndEd(t *testing.T) {
	got := Filter(sampleCombinations(), Selection{Variants: map[string][]string{
		"color": {"red"},
		"tarp":  {"manual"},
	}})
	require.Len(t, got, 1)
	assert.Equal(t, "v1", got[0].CombinationID)
}

func TestFilter_MissingCategoryFailsTheVariant(t *testing.T) {
	// v3 has no tarp selection, so selecting on tarp excludes it even
	// though its color matches.
	got := Filter(sampleCombinations(), Selection{Variants: map[string][]string{"tarp": {"manual"}}})
	require.Len(t, got, 2)
	assert.Equal(t, "v1", got[0].CombinationID)
	assert.Equal(t, "v2", got[1].CombinationID)
}

func TestFilter_ChassisAndVariantSelectionsCombine(t *testing.T) {
	got := Filter(sampleCombinations(), Selection{
		ChassisKeys: []string{ChassisKey(chassisB())},
		Variants:    map[string][]string{"color": {"blue"}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "v2", got[0].CombinationID)
}

func TestFilter_NoMatchesYieldsEmptySlice(t *testing.T) {
	got := Filter(sampleCombinations(), Selection{Variants: map[string][]string{"color": {"green"}}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_Reentrant(t *testing.T) {
	combinations := sampleCombinations()
	sel := Selection{Variants: map[string][]string{"color": {"red"}}}

	first := Filter(combinations, sel)
	second := Filter(combinations, sel)
	assert.Equal(t, first, second)
	assert.Len(t, combinations, 3)
}

func TestSelection_Empty(t *testing.T) {
	assert.True(t, Selection{}.Empty())
	assert.True(t, Selection{Variants: map[string][]string{}}.Empty())
	assert.False(t, Selection{ChassisKeys: []string{"k"}}.Empty())
	assert.False(t, Selection{Variants: map[string][]string{"color": {"red"}}}.Empty())
}
