// Package search implements free-text relevance search over catalogue records.
package search

import "strings"

// Score returns a similarity score for two strings in [0, 1].
// Matching is case-insensitive and total: every string pair scores.
// Rules are applied in priority order and later rules are only reached
// when earlier ones fail:
//
//  1. equal strings score 1.0
//  2. substring containment (either direction) scores 0.8
//  3. the shorter string appearing as an in-order subsequence of the
//     longer scores 0.6
//  4. otherwise, the fraction of the shorter string's characters found
//     anywhere in the longer, divided by the longer string's length
//
// This is a cheap heuristic, not an edit-distance metric; the rule order
// is part of the contract and must not be reordered.
func Score(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.8
	}

	longer, shorter := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		longer, shorter = shorter, longer
	}
	if len(longer) == 0 {
		return 1
	}

	if isSubsequence(shorter, longer) {
		return 0.6
	}

	// Character overlap: each shorter-string character checked
	// independently for membership, no deduplication. The numerator is
	// bounded by len(shorter), so the ratio never exceeds 1.
	matches := 0
	for _, r := range shorter {
		if containsRune(longer, r) {
			matches++
		}
	}
	return float64(matches) / float64(len(longer))
}

// isSubsequence reports whether every rune of pattern appears in order
// within target, scanning left to right with no backtracking.
func isSubsequence(pattern, target []rune) bool {
	pi := 0
	for ti := 0; pi < len(pattern) && ti < len(target); ti++ {
		if pattern[pi] == target[ti] {
			pi++
		}
	}
	return pi == len(pattern)
}

func containsRune(rs []rune, r rune) bool {
	for _, c := range rs {
		if c == r {
			return true
		}
	}
	return false
}
