package search

import (
	"sort"
	"strings"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
)

// Search filters records by relevance to term and orders them by
// descending score. Ties keep their relative input order. An empty or
// whitespace-only term returns the input unchanged. The function is pure:
// it never mutates its inputs and is safe to re-invoke.
func Search(records []catalogue.CatalogueRecord, term string) []catalogue.CatalogueRecord {
	if strings.TrimSpace(term) == "" {
		return records
	}

	type scored struct {
		record catalogue.CatalogueRecord
		score  float64
	}

	matched := make([]scored, 0, len(records))
	for _, rec := range records {
		if result := MatchRecord(rec, term); result.IsMatch {
			matched = append(matched, scored{record: rec, score: result.Score})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	out := make([]catalogue.CatalogueRecord, len(matched))
	for i, m := range matched {
		out[i] = m.record
	}
	return out
}
