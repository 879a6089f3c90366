package search

import (
	"strings"

	"github.com/asb-digital/storefront-engine/internal/catalogue"
)

// matchThreshold is the deliberately low score bar for a record to count
// as a match, favouring recall over precision on a small catalogue.
const matchThreshold = 0.3

// MatchResult is the verdict of matching one record against a term.
type MatchResult struct {
	IsMatch bool
	Score   float64
}

// MatchRecord scans the record's textual fields against the search term
// and returns the best score found. An empty or whitespace-only term
// matches every record with a full score.
func MatchRecord(rec catalogue.CatalogueRecord, term string) MatchResult {
	term = strings.TrimSpace(term)
	if term == "" {
		return MatchResult{IsMatch: true, Score: 1}
	}
	term = strings.ToLower(term)

	maxScore := 0.0
	for _, field := range searchFields(rec) {
		if field == "" {
			continue
		}
		fieldLower := strings.ToLower(field)

		// Exact equality short-circuits.
		if fieldLower == term {
			return MatchResult{IsMatch: true, Score: 1}
		}
		if strings.Contains(fieldLower, term) {
			maxScore = max(maxScore, 0.8)
		}
		if isSubsequence([]rune(term), []rune(fieldLower)) {
			maxScore = max(maxScore, 0.6)
		}
		maxScore = max(maxScore, Score(term, fieldLower))
	}

	return MatchResult{IsMatch: maxScore >= matchThreshold, Score: maxScore}
}

// searchFields collects every textual field a term is matched against.
func searchFields(rec catalogue.CatalogueRecord) []string {
	fields := []string{
		rec.BodyType.Name,
		rec.BodyType.ShortName,
		rec.Article,
		rec.LeadTime,
		rec.Notes,
	}
	for _, size := range rec.Sizes {
		fields = append(fields, size.SizeType.Name, size.SizeType.ShortName, size.SizeCustom)
	}
	for _, ch := range rec.Chassis {
		fields = append(fields, ch.ChassisType.Name, ch.ChassisType.ShortName)
		fields = append(fields, ch.ChassisDetails...)
	}
	return fields
}
