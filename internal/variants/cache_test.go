package variants

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
)

func TestOptionCache_ComputesAndServesOptions(t *testing.T) {
	cache := NewOptionCache(10)
	combinations := sampleCombinations()

	opts := cache.Options(combinations)
	require.Len(t, opts.Chassis, 2)
	assert.Equal(t, map[string][]string{
		"color": {"blue", "red"},
		"tarp":  {"manual"},
	}, opts.Variants)

	again := cache.Options(combinations)
	assert.Equal(t, opts, again)
}

func TestOptionCache_ChangedListRecomputed(t *testing.T) {
	cache := NewOptionCache(10)
	combinations := sampleCombinations()

	first := cache.Options(combinations)
	require.Len(t, first.Chassis, 2)

	extended := append(combinations, catalogue.VariantCombination{
		CombinationID: "v4",
		ChassisData: &catalogue.Chassis{
			ChassisType: catalogue.TypeRef{ID: "ct-c", Name: "Extra"},
		},
	})
	second := cache.Options(extended)
	assert.Len(t, second.Chassis, 3)
}

func TestOptionCache_BoundResetsEntries(t *testing.T) {
	cache := NewOptionCache(2)
	for i := 0; i < 5; i++ {
		cache.Options([]catalogue.VariantCombination{{CombinationID: fmt.Sprintf("v%d", i)}})
	}

	// Still serves correct results after the reset.
	opts := cache.Options(sampleCombinations())
	assert.Len(t, opts.Chassis, 2)
}

func TestFingerprint_SensitiveToIdentityAndOrder(t *testing.T) {
	a := []catalogue.VariantCombination{{CombinationID: "v1"}, {CombinationID: "v2"}}
	b := []catalogue.VariantCombination{{CombinationID: "v2"}, {CombinationID: "v1"}}

	assert.NotEqual(t, fingerprint(a), fingerprint(b))
	assert.Equal(t, fingerprint(a), fingerprint([]catalogue.VariantCombination{{CombinationID: "v1"}, {CombinationID: "v2"}}))
}
