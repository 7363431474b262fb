package handlers

import (
	"encoding/json"
	"net/http"

	"wedding-rsvp/internal/model"
	"wedding-rsvp/internal/rsvp"
	"wedding-rsvp/internal/utils"
)

// submitRequest carries the invite code and the completed household form.
type submitRequest struct {
	Code string         `json:"code"`
	Form *rsvp.FormData `json:"form"`
}

type submitResponse struct {
	Status string `json:"status"`
}

// HandleSubmit processes an RSVP submission: it loads the household, replays
// the submitted form through the session state machine and commits. The
// confirmation email is fired after the write and never blocks or rolls it
// back.
func HandleSubmit(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Form == nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
			return
		}

		_, key, err := model.ParseInviteCode(req.Code)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Please enter a code like ABCD-1234."})
			return
		}

		rec, err := s.GetStore().Get(r.Context(), key)
		if err != nil {
			writeError(w, err)
			return
		}

		if len(req.Form.Guests) != len(rec.Guests) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "The submitted form does not match this invitation."})
			return
		}

		// The optional invitee phone is normalized to E.164 up front so the
		// session only ever sees canonical values.
		if req.Form.Invitee.Phone != "" {
			normalized, err := utils.NormalizePhoneNumber(req.Form.Invitee.Phone)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorBody{Error: "Please enter a valid phone number."})
				return
			}
			req.Form.Invitee.Phone = normalized
		}

		session := rsvp.NewSession(s.GetStore())
		session.Load(rec)
		applyForm(session, req.Form)

		if err := session.Submit(r.Context()); err != nil {
			writeError(w, err)
			return
		}

		// Fire-and-forget confirmation. A send failure is logged, never
		// surfaced: the RSVP is already persisted.
		if notifier := s.GetNotifier(); notifier != nil {
			form := session.Form()
			log := s.GetLogger()
			go func() {
				if err := notifier.SendConfirmation(rec, form); err != nil {
					log.Error().Err(err).Str("invite_code", rec.InviteCode).Msg("confirmation email failed")
				}
			}()
		}

		writeJSON(w, http.StatusOK, submitResponse{Status: "ok"})
	}
}

// applyForm replays the submitted values through the session's field
// transitions. The guest count was checked against the record already, so an
// index panic here would be a bug, not bad input.
func applyForm(session *rsvp.Session, form *rsvp.FormData) {
	applyPerson(form.Invitee, func(f rsvp.Field, v any) { session.UpdateInvitee(f, v) })
	for i := range form.Guests {
		idx := i
		applyPerson(form.Guests[idx], func(f rsvp.Field, v any) { session.UpdateGuest(idx, f, v) })
	}
}

func applyPerson(p rsvp.PersonForm, set func(rsvp.Field, any)) {
	set(rsvp.FieldName, p.Name)
	set(rsvp.FieldAttendingCeremony, p.AttendingCeremony)
	set(rsvp.FieldAttendingReception, p.AttendingReception)
	set(rsvp.FieldAttendingBrunch, p.AttendingBrunch)
	set(rsvp.FieldFoodOption, p.FoodOption)
	set(rsvp.FieldDietaryRestrictions, p.DietaryRestrictions)
	set(rsvp.FieldContactInfo, p.ContactInfo)
	set(rsvp.FieldPhone, p.Phone)
}
