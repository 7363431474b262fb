package match

import (
	"regexp"
	"strings"
)

// nonNameRe strips everything outside lowercase alphanumerics and
// whitespace. Diacritics and punctuation in names are removed, not folded.
var nonNameRe = regexp.MustCompile(`[^a-z0-9\s]+`)

// Normalize lowercases, trims and strips a name for comparison. All scoring
// operates on normalized strings.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimSpace(nonNameRe.ReplaceAllString(s, ""))
}

// Similarity measures position-aligned character overlap between two
// normalized words, with a bonus for a single adjacent transposition.
//
// Words whose lengths differ by more than 2 score 0. Words shorter than 3
// characters must match exactly. The transposition bonus is added to the
// match count before dividing and is deliberately not clamped.
func Similarity(a, b string) float64 {
	la, lb := len(a), len(b)
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	if diff > 2 {
		return 0
	}

	longer, shorter := la, lb
	if lb > la {
		longer, shorter = lb, la
	}
	if longer < 3 {
		if a == b {
			return 1
		}
		return 0
	}

	matches := 0.0
	first, second := -1, -1
	for i := 0; i < shorter; i++ {
		if a[i] == b[i] {
			matches++
			continue
		}
		if first == -1 {
			first = i
		} else if second == -1 {
			second = i
		}
	}

	// Equal-length words with exactly two differing characters that form an
	// adjacent swap ("setven" for "steven") earn a transposition bonus.
	if la == lb && first != -1 && second == first+1 && float64(la)-matches == 2 {
		if a[first] == b[second] && a[second] == b[first] {
			matches += 1.5
		}
	}

	return matches / float64(longer)
}
