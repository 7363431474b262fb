package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wedding-rsvp/internal/model"
)

func TestHandleAdminCreateHousehold(t *testing.T) {
	s := newFakeServer(t)

	body := `{
		"inviteeName": "Alice Brown",
		"inviteeAllowedBrunch": true,
		"guests": [
			{"name": "Bob Brown", "allowedBrunch": true},
			{"name": ""}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/admin/households/create", strings.NewReader(body))
	w := httptest.NewRecorder()
	HandleAdminCreateHousehold(s)(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}
	var resp struct {
		InviteCode string `json:"inviteCode"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	_, key, err := model.ParseInviteCode(resp.InviteCode)
	if err != nil {
		t.Fatalf("generated code %q does not parse: %v", resp.InviteCode, err)
	}

	rec, err := s.store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.Invitee.DisplayName() != "Alice Brown" || !rec.Invitee.AllowedToAttendBrunch {
		t.Errorf("invitee = %+v, want Alice Brown with brunch", rec.Invitee)
	}
	if len(rec.Guests) != 2 {
		t.Fatalf("got %d guests, want 2", len(rec.Guests))
	}
	if rec.Guests[0].DisplayName() != "Bob Brown" || rec.Guests[0].IsNameEditable {
		t.Errorf("named guest = %+v, want fixed Bob Brown", rec.Guests[0])
	}
	if !rec.Guests[1].IsNameEditable || rec.Guests[1].Name != nil {
		t.Errorf("unnamed guest = %+v, want editable plus-one slot", rec.Guests[1])
	}
}

func TestHandleAdminCreateHouseholdRequiresName(t *testing.T) {
	s := newFakeServer(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/households/create", strings.NewReader(`{"guests": []}`))
	w := httptest.NewRecorder()
	HandleAdminCreateHousehold(s)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleAdminHouseholds(t *testing.T) {
	s := newFakeServer(t, seededRecord())

	req := httptest.NewRequest(http.MethodGet, "/admin/households", nil)
	w := httptest.NewRecorder()
	HandleAdminHouseholds(s)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var rows []adminHousehold
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].InviteCode != "ABCD-1234" || rows[0].GuestCount != 1 || rows[0].Responded {
		t.Errorf("row = %+v, want ABCD-1234 with 1 guest, not responded", rows[0])
	}
}
