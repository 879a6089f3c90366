// Package variants derives filter options from a product's variant
// combinations and narrows combinations by selected options.
package variants

import (
	"sort"
	"strings"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
)

// ChassisOption is one distinct chassis identity observed across a
// product's variants.
type ChassisOption struct {
	Key         string            `json:"key"`
	Label       string            `json:"label"`
	ChassisData catalogue.Chassis `json:"chassisData"`
}

// ChassisKey derives the identity key for a chassis configuration. The
// same derivation is used for option extraction and filtering, so two
// variants with equal keys are the same chassis option. Details are
// sorted inside the key only; display order is preserved elsewhere.
func ChassisKey(ch *catalogue.Chassis) string {
	typeID := "no-type"
	if ch != nil && ch.ChassisType.ID != "" {
		typeID = ch.ChassisType.ID
	}
	details := "no-details"
	if ch != nil && len(ch.ChassisDetails) > 0 {
		sorted := append([]string(nil), ch.ChassisDetails...)
		sort.Strings(sorted)
		details = strings.Join(sorted, "|")
	}
	return typeID + "_" + details
}

// ChassisOptions returns the distinct chassis options across the given
// variants, in first-seen order with first-seen labels. Variants without
// chassis data contribute no option.
func ChassisOptions(combinations []catalogue.VariantCombination) []ChassisOption {
	seen := make(map[string]struct{})
	options := make([]ChassisOption, 0)
	for _, v := range combinations {
		if v.ChassisData == nil {
			continue
		}
		key := ChassisKey(v.ChassisData)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		label := v.ChassisData.ChassisType.Label()
		if label == "" {
			label = "Unknown"
		}
		if len(v.ChassisData.ChassisDetails) > 0 {
			label += " (" + strings.Join(v.ChassisData.ChassisDetails, ", ") + ")"
		}

		options = append(options, ChassisOption{
			Key:         key,
			Label:       label,
			ChassisData: v.ChassisData.Clone(),
		})
	}
	return options
}

// VariantOptions collects every (category, value) pair observed across
// the variants into a mapping from category to its sorted distinct
// values. Category iteration order is unspecified.
func VariantOptions(combinations []catalogue.VariantCombination) map[string][]string {
	sets := make(map[string]map[string]struct{})
	for _, v := range combinations {
		for category, value := range v.VariantSelections {
			if sets[category] == nil {
				sets[category] = make(map[string]struct{})
			}
			sets[category][value] = struct{}{}
		}
	}

	out := make(map[string][]string, len(sets))
	for category, values := range sets {
		sorted := make([]string, 0, len(values))
		for value := range values {
			sorted = append(sorted, value)
		}
		sort.Strings(sorted)
		out[category] = sorted
	}
	return out
}
