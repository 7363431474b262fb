package match

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMatchScoreExact(t *testing.T) {
	for _, name := range []string{"steven smith", "ann lee", "maryjane obrien"} {
		if got := MatchScore(name, name); got != 1.0 {
			t.Errorf("MatchScore(%q, %q) = %v, want 1.0", name, name, got)
		}
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name      string
		search    string
		candidate string
		expected  float64
	}{
		{
			name:      "candidate contains full search string",
			search:    "smith",
			candidate: "steven smith",
			expected:  0.9,
		},
		{
			name:      "identical words across positions",
			search:    "smith steven",
			candidate: "steven smith",
			expected:  1.0,
		},
		{
			name:      "word substring discounted by length ratio",
			search:    "steve smith",
			candidate: "steven smith",
			expected:  (5.0/6.0*0.85 + 1.0) / 2.0,
		},
		{
			name:      "last name only as search words",
			search:    "steven smith",
			candidate: "smith",
			expected:  0.5,
		},
		{
			name:      "no overlap at all",
			search:    "bob jones",
			candidate: "ann lee",
			expected:  0,
		},
		{
			name:      "empty search",
			search:    "",
			candidate: "steven smith",
			expected:  0,
		},
		{
			name:      "empty candidate",
			search:    "steven smith",
			candidate: "",
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchScore(tt.search, tt.candidate); !almostEqual(got, tt.expected) {
				t.Errorf("MatchScore(%q, %q) = %v, want %v", tt.search, tt.candidate, got, tt.expected)
			}
		})
	}
}

// The containment rule is directional, so scoring must not be symmetric:
// "steven smith" contains "smith" but not the other way around.
func TestMatchScoreAsymmetry(t *testing.T) {
	forward := MatchScore("smith", "steven smith")
	backward := MatchScore("steven smith", "smith")
	if forward != 0.9 {
		t.Errorf("MatchScore(smith, steven smith) = %v, want 0.9", forward)
	}
	if backward != 0.5 {
		t.Errorf("MatchScore(steven smith, smith) = %v, want 0.5", backward)
	}
}

func TestMatchScoreNicknameTolerance(t *testing.T) {
	// First-position words get the looser similarity gate: the first search
	// word scores sim*0.6 whenever sim exceeds 0.4.
	score := MatchScore("jon smith", "john smith")
	// Similarity("jon", "john") = 2/4 (j and o align, lengths differ by 1).
	expected := (0.5*0.6 + 1.0) / 2.0
	if !almostEqual(score, expected) {
		t.Errorf("MatchScore(jon smith, john smith) = %v, want %v", score, expected)
	}
}

func TestMatchScoreTypoTolerance(t *testing.T) {
	// Non-first words use the stricter 0.6 gate and 0.7 weight.
	score := MatchScore("steven simth", "steven smith")
	// Similarity("simth", "smith") = (3+1.5)/5: s,t,h align, im/mi is an
	// adjacent transposition.
	sim := 4.5 / 5.0
	expected := (1.0 + sim*0.7) / 2.0
	if !almostEqual(score, expected) {
		t.Errorf("MatchScore(steven simth, steven smith) = %v, want %v", score, expected)
	}
}
