package match

import (
	"strings"
)

// Word-level scoring weights. Substring matches are discounted by length
// ratio; near-misses by character similarity. The first search word gets a
// looser similarity gate so common nickname forms still score.
const (
	substringWeight   = 0.85
	nicknameWeight    = 0.6
	nicknameMinSim    = 0.4
	typoWeight        = 0.7
	typoMinSim        = 0.6
	containmentScore  = 0.9
	minCoverageWeight = 0.5
)

// MatchScore scores a normalized search string against a normalized
// candidate name. 1.0 means an exact match; anything at or below the
// resolver threshold is treated as no match.
//
// The containment rule is directional (candidate containing the search
// string scores 0.9, not the reverse), so MatchScore is not symmetric.
func MatchScore(search, candidate string) float64 {
	if search == "" || candidate == "" {
		return 0
	}
	if search == candidate {
		return 1.0
	}
	if strings.Contains(candidate, search) {
		return containmentScore
	}

	searchWords := strings.Fields(search)
	candidateWords := strings.Fields(candidate)

	total := 0.0
	matched := 0
	for i, sw := range searchWords {
		best := 0.0
		for _, cw := range candidateWords {
			if s := wordScore(sw, cw, i == 0); s > best {
				best = s
			}
		}
		if best > 0 {
			total += best
			matched++
		}
	}
	if matched == 0 {
		return 0
	}

	// A partial match (say, last name only) keeps at least half weight.
	coverage := float64(matched) / float64(len(searchWords))
	if coverage < minCoverageWeight {
		coverage = minCoverageWeight
	}
	return total / float64(matched) * coverage
}

// wordScore scores one search word against one candidate word. firstWord
// relaxes the similarity gate for the first-name slot.
func wordScore(sw, cw string, firstWord bool) float64 {
	if sw == cw {
		return 1.0
	}
	if strings.Contains(cw, sw) || strings.Contains(sw, cw) {
		shorter, longer := len(sw), len(cw)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer) * substringWeight
	}
	sim := Similarity(sw, cw)
	if firstWord && sim > nicknameMinSim {
		return sim * nicknameWeight
	}
	if sim > typoMinSim {
		return sim * typoWeight
	}
	return 0
}
