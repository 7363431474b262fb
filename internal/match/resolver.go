package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/model"
	"wedding-rsvp/internal/store"
)

const (
	// MinScoreThreshold discards weak matches; scores at or below it never
	// reach the candidate list.
	MinScoreThreshold = 0.25

	// MaxMatches caps the ranked candidate list.
	MaxMatches = 10
)

// ErrEmptyName rejects a search before any store access happens.
var ErrEmptyName = errors.New("first and last name are required")

// OutcomeKind classifies a resolver result.
type OutcomeKind int

const (
	// OutcomeNotFound means no candidate scored above the threshold.
	OutcomeNotFound OutcomeKind = iota
	// OutcomeAutoSelected means a single exact match was found and the
	// record can be opened without disambiguation.
	OutcomeAutoSelected
	// OutcomeCandidates means the user must pick from a ranked list.
	OutcomeCandidates
)

// Candidate is one household surfaced by name search. DisplayName carries
// the guest attribution when the best-scoring person was not the invitee.
type Candidate struct {
	Record      *model.HouseholdRecord
	Score       float64
	DisplayName string
	IsGuest     bool
}

// Outcome is the resolver's answer for one search.
type Outcome struct {
	Kind       OutcomeKind
	Record     *model.HouseholdRecord
	Candidates []Candidate
}

// Resolver ranks household records against a user-typed name. The store is
// injected; the clock is replaceable for tests.
type Resolver struct {
	store store.Store
	now   func() time.Time
	log   zerolog.Logger
}

// NewResolver builds a resolver over the given store.
func NewResolver(st store.Store, log zerolog.Logger) *Resolver {
	return &Resolver{store: st, now: time.Now, log: log}
}

// Resolve scores every active household against the searched name and
// decides between auto-selecting an exact match, returning a ranked
// disambiguation list, or NotFound. Households past their RSVP deadline are
// excluded entirely; those are reachable only by invite code.
func (r *Resolver) Resolve(ctx context.Context, firstName, lastName string) (*Outcome, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, ErrEmptyName
	}
	search := Normalize(firstName + " " + lastName)
	if search == "" {
		return nil, ErrEmptyName
	}

	records, err := r.store.QueryActive(ctx, r.now())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch households for name search: %w", err)
	}

	var candidates []Candidate
	for _, rec := range records {
		cand := scoreRecord(rec, search)
		if cand.Score > MinScoreThreshold {
			candidates = append(candidates, cand)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > MaxMatches {
		candidates = candidates[:MaxMatches]
	}

	r.log.Debug().
		Str("search", search).
		Int("scanned", len(records)).
		Int("matched", len(candidates)).
		Msg("name search")

	switch {
	case len(candidates) == 0:
		return &Outcome{Kind: OutcomeNotFound}, nil
	case len(candidates) == 1 && candidates[0].Score == 1.0:
		return &Outcome{Kind: OutcomeAutoSelected, Record: candidates[0].Record}, nil
	default:
		return &Outcome{Kind: OutcomeCandidates, Candidates: candidates}, nil
	}
}

// scoreRecord scores one household: the invitee first, then each guest. A
// guest takes over the attribution only when it strictly outscores what came
// before, so the invitee wins ties and the record appears at most once.
func scoreRecord(rec *model.HouseholdRecord, search string) Candidate {
	inviteeName := rec.Invitee.DisplayName()
	cand := Candidate{
		Record:      rec,
		Score:       MatchScore(search, Normalize(inviteeName)),
		DisplayName: inviteeName,
	}
	for i := range rec.Guests {
		g := &rec.Guests[i]
		if g.Name == nil {
			continue
		}
		if s := MatchScore(search, Normalize(*g.Name)); s > cand.Score {
			cand.Score = s
			cand.DisplayName = fmt.Sprintf("%s (guest of %s)", *g.Name, inviteeName)
			cand.IsGuest = true
		}
	}
	return cand
}
