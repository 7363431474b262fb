package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"wedding-rsvp/internal/match"
	"wedding-rsvp/internal/model"
	"wedding-rsvp/internal/rsvp"
)

// searchRequest is the RSVP-by-name lookup input.
type searchRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// searchCandidate is one entry of the disambiguation list. The invite code
// lets the client fetch the household once the user picks themselves.
type searchCandidate struct {
	DisplayName string  `json:"displayName"`
	Score       float64 `json:"score"`
	InviteCode  string  `json:"inviteCode"`
	IsGuest     bool    `json:"isGuest"`
}

type searchResponse struct {
	Outcome    string            `json:"outcome"` // auto_selected | candidates | not_found
	Household  *householdView    `json:"household,omitempty"`
	Candidates []searchCandidate `json:"candidates,omitempty"`
}

// householdView is the household payload handed to the RSVP form.
type householdView struct {
	InviteCode   string         `json:"inviteCode"`
	RSVPDeadline time.Time      `json:"rsvpDeadline"`
	LastModified *time.Time     `json:"lastModified"`
	Form         *rsvp.FormData `json:"form"`
}

func newHouseholdView(rec *model.HouseholdRecord) *householdView {
	return &householdView{
		InviteCode:   rec.InviteCode,
		RSVPDeadline: rec.RSVPDeadline,
		LastModified: rec.LastModified,
		Form:         rsvp.DeriveFormData(rec),
	}
}

// HandleSearch resolves a typed first/last name to a household, a ranked
// candidate list, or not-found.
func HandleSearch(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
			return
		}

		outcome, err := s.GetResolver().Resolve(r.Context(), req.FirstName, req.LastName)
		if err != nil {
			writeError(w, err)
			return
		}

		switch outcome.Kind {
		case match.OutcomeAutoSelected:
			writeJSON(w, http.StatusOK, searchResponse{
				Outcome:   "auto_selected",
				Household: newHouseholdView(outcome.Record),
			})
		case match.OutcomeCandidates:
			candidates := make([]searchCandidate, len(outcome.Candidates))
			for i, c := range outcome.Candidates {
				candidates[i] = searchCandidate{
					DisplayName: c.DisplayName,
					Score:       c.Score,
					InviteCode:  c.Record.InviteCode,
					IsGuest:     c.IsGuest,
				}
			}
			writeJSON(w, http.StatusOK, searchResponse{Outcome: "candidates", Candidates: candidates})
		default:
			writeJSON(w, http.StatusOK, searchResponse{Outcome: "not_found"})
		}
	}
}

// HandleLookupByCode loads a household by invite code. Unlike name search,
// code lookup still reaches past-deadline records, but those are flagged as
// read-only with a deadline error.
func HandleLookupByCode(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		_, key, err := model.ParseInviteCode(r.URL.Query().Get("code"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Please enter a code like ABCD-1234."})
			return
		}

		rec, err := s.GetStore().Get(r.Context(), key)
		if err != nil {
			writeError(w, err)
			return
		}

		if rec.DeadlinePassed(time.Now()) {
			writeError(w, rsvp.ErrDeadlinePassed)
			return
		}

		writeJSON(w, http.StatusOK, searchResponse{
			Outcome:   "auto_selected",
			Household: newHouseholdView(rec),
		})
	}
}
