package rsvp

import (
	"strings"
	"testing"

	"wedding-rsvp/internal/model"
)

// validForm builds a form that passes every check: invitee and one guest
// attending ceremony and reception with food chosen, nobody allowed brunch.
func validForm() *FormData {
	return &FormData{
		Invitee: PersonForm{
			Name:               "Steven Smith",
			AttendingCeremony:  boolPtr(true),
			AttendingReception: boolPtr(true),
			FoodOption:         foodPtr(model.FoodChicken),
			ContactInfo:        "steven@example.com",
		},
		Guests: []PersonForm{
			{
				Name:               "Jane Smith",
				AttendingCeremony:  boolPtr(true),
				AttendingReception: boolPtr(true),
				FoodOption:         foodPtr(model.FoodSalmon),
			},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	if msg := Validate(validForm()); msg != "" {
		t.Errorf("Validate() = %q, want valid", msg)
	}
}

func TestValidateDecliningEverythingNeedsNoFood(t *testing.T) {
	form := validForm()
	form.Invitee.AttendingCeremony = boolPtr(false)
	form.Invitee.AttendingReception = boolPtr(false)
	form.Invitee.FoodOption = nil
	form.Guests[0].AttendingCeremony = boolPtr(false)
	form.Guests[0].AttendingReception = boolPtr(false)
	form.Guests[0].FoodOption = nil

	if msg := Validate(form); msg != "" {
		t.Errorf("Validate() = %q, want valid: food is only required when attending the reception", msg)
	}
}

func TestValidateOrderedFailures(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*FormData)
		wantPart string
	}{
		{
			name:     "invitee ceremony unset",
			modify:   func(f *FormData) { f.Invitee.AttendingCeremony = nil },
			wantPart: "ceremony",
		},
		{
			name:     "invitee reception unset",
			modify:   func(f *FormData) { f.Invitee.AttendingReception = nil },
			wantPart: "reception",
		},
		{
			name:     "invitee attending reception without food",
			modify:   func(f *FormData) { f.Invitee.FoodOption = nil },
			wantPart: "dinner option",
		},
		{
			name:     "invitee contact missing",
			modify:   func(f *FormData) { f.Invitee.ContactInfo = "" },
			wantPart: "email",
		},
		{
			name:     "invitee contact not an email",
			modify:   func(f *FormData) { f.Invitee.ContactInfo = "not-an-email" },
			wantPart: "email",
		},
		{
			name: "invitee contact required even when declining everything",
			modify: func(f *FormData) {
				f.Invitee.AttendingCeremony = boolPtr(false)
				f.Invitee.AttendingReception = boolPtr(false)
				f.Invitee.FoodOption = nil
				f.Invitee.ContactInfo = ""
			},
			wantPart: "email",
		},
		{
			name: "invitee brunch unset when allowed",
			modify: func(f *FormData) {
				f.Invitee.AllowedToAttendBrunch = true
				f.Invitee.AttendingBrunch = nil
			},
			wantPart: "brunch",
		},
		{
			name:     "guest ceremony unset",
			modify:   func(f *FormData) { f.Guests[0].AttendingCeremony = nil },
			wantPart: "Guest 1",
		},
		{
			name: "guest food unset when attending reception",
			modify: func(f *FormData) {
				f.Guests[0].FoodOption = nil
			},
			wantPart: "Guest 1: please choose a dinner option",
		},
		{
			name: "guest unknown food without contact",
			modify: func(f *FormData) {
				f.Guests[0].FoodOption = foodPtr(model.FoodUnknown)
				f.Guests[0].ContactInfo = ""
			},
			wantPart: "contact info",
		},
		{
			name: "guest contact not an email",
			modify: func(f *FormData) {
				f.Guests[0].ContactInfo = "nope"
			},
			wantPart: "Guest 1: please provide a valid email",
		},
		{
			name: "guest brunch unset when allowed",
			modify: func(f *FormData) {
				f.Guests[0].AllowedToAttendBrunch = true
				f.Guests[0].AttendingBrunch = nil
			},
			wantPart: "Guest 1: please answer whether they will attend the brunch",
		},
		{
			name: "attending editable guest without a name",
			modify: func(f *FormData) {
				f.Guests[0].NameEditable = true
				f.Guests[0].Name = ""
			},
			wantPart: "Guest 1: please provide a name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.modify(form)
			msg := Validate(form)
			if msg == "" {
				t.Fatal("Validate() accepted an invalid form")
			}
			if !strings.Contains(msg, tt.wantPart) {
				t.Errorf("Validate() = %q, want message containing %q", msg, tt.wantPart)
			}
		})
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	form := validForm()
	form.Invitee.AttendingCeremony = nil
	form.Guests[0].AttendingReception = nil

	msg := Validate(form)
	if !strings.Contains(msg, "ceremony") || strings.Contains(msg, "Guest") {
		t.Errorf("Validate() = %q, want the invitee ceremony error first", msg)
	}
}

func TestValidateDecliningGuestNeedsNoName(t *testing.T) {
	form := validForm()
	form.Guests[0].NameEditable = true
	form.Guests[0].Name = ""
	form.Guests[0].AttendingCeremony = boolPtr(false)
	form.Guests[0].AttendingReception = boolPtr(false)
	form.Guests[0].FoodOption = nil

	if msg := Validate(form); msg != "" {
		t.Errorf("Validate() = %q, want valid: a declining plus-one needs no name", msg)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"steven@example.com", true},
		{"a.b+c@sub.domain.co", true},
		{"no-at-sign.com", false},
		{"missing@tld", false},
		{"spaces in@local.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidEmail(tt.input); got != tt.valid {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.input, got, tt.valid)
		}
	}
}
