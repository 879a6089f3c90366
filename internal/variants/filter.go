package variants

import (
	"slices"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
)

// Selection holds the active filter choices: chassis option keys and,
// per category, the accepted values.
type Selection struct {
	ChassisKeys []string            `json:"chassisKeys,omitempty"`
	Variants    map[string][]string `json:"variants,omitempty"`
}

// Empty reports whether no filter is active.
func (s Selection) Empty() bool {
	return len(s.ChassisKeys) == 0 && len(s.Variants) == 0
}

// Filter narrows combinations to those matching the selection. A variant
// passes when its derived chassis key is among the selected keys (or no
// chassis is selected), AND for every selected category its own selection
// is one of the accepted values. Values within a category are OR-ed,
// categories are AND-ed. An empty selection returns the input unchanged.
func Filter(combinations []catalogue.VariantCombination, sel Selection) []catalogue.VariantCombination {
	if sel.Empty() {
		return combinations
	}

	out := make([]catalogue.VariantCombination, 0, len(combinations))
	for _, v := range combinations {
		if !matchesChassis(v, sel.ChassisKeys) {
			continue
		}
		if !matchesVariants(v, sel.Variants) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func matchesChassis(v catalogue.VariantCombination, keys []string) bool {
	if len(keys) == 0 {
		return true
	}
	return slices.Contains(keys, ChassisKey(v.ChassisData))
}

func matchesVariants(v catalogue.VariantCombination, selected map[string][]string) bool {
	for category, values := range selected {
		value := v.VariantSelections[category]
		if value == "" || !slices.Contains(values, value) {
			return false
		}
	}
	return true
}
