package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"wedding-rsvp/internal/model"
)

// adminHousehold is one row of the admin household listing.
type adminHousehold struct {
	InviteCode   string     `json:"inviteCode"`
	Invitee      string     `json:"invitee"`
	GuestCount   int        `json:"guestCount"`
	Responded    bool       `json:"responded"`
	LastModified *time.Time `json:"lastModified"`
	Deadline     time.Time  `json:"deadline"`
}

// HandleAdminHouseholds lists every household with its response status.
func HandleAdminHouseholds(s AdminServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		records, err := s.GetStore().ListAll(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		rows := make([]adminHousehold, len(records))
		for i, rec := range records {
			rows[i] = adminHousehold{
				InviteCode:   rec.InviteCode,
				Invitee:      rec.Invitee.DisplayName(),
				GuestCount:   len(rec.Guests),
				Responded:    rec.LastModified != nil,
				LastModified: rec.LastModified,
				Deadline:     rec.RSVPDeadline,
			}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// createHouseholdRequest describes a new invitation. Guest slots without a
// name become editable plus-one slots.
type createHouseholdRequest struct {
	InviteeName          string `json:"inviteeName"`
	InviteeAllowedBrunch bool   `json:"inviteeAllowedBrunch"`
	Guests               []struct {
		Name          string `json:"name"`
		AllowedBrunch bool   `json:"allowedBrunch"`
	} `json:"guests"`
	Deadline *time.Time `json:"deadline"`
}

// HandleAdminCreateHousehold creates a household with a generated invite
// code. Batch invitation generation stays outside the server; this covers
// the occasional late addition.
func HandleAdminCreateHousehold(s AdminServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req createHouseholdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.InviteeName == "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invitee name is required"})
			return
		}

		deadline := s.GetConfig().DefaultRSVPDeadline
		if req.Deadline != nil {
			deadline = *req.Deadline
		}

		inviteeName := req.InviteeName
		rec := &model.HouseholdRecord{
			RSVPDeadline: deadline,
			Invitee: model.Person{
				Name:                  &inviteeName,
				AllowedToAttendBrunch: req.InviteeAllowedBrunch,
			},
		}
		for _, g := range req.Guests {
			person := model.Person{AllowedToAttendBrunch: g.AllowedBrunch}
			if g.Name == "" {
				person.IsNameEditable = true
			} else {
				name := g.Name
				person.Name = &name
			}
			rec.Guests = append(rec.Guests, person)
		}

		if err := s.GetStore().Create(r.Context(), rec); err != nil {
			writeError(w, err)
			return
		}

		email, _ := s.GetCurrentUser(r)
		log := s.GetLogger()
		log.Info().
			Str("invite_code", rec.InviteCode).
			Str("admin", email).
			Msg("household created")

		writeJSON(w, http.StatusCreated, map[string]string{"inviteCode": rec.InviteCode})
	}
}
