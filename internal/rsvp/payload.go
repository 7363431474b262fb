package rsvp

import (
	"wedding-rsvp/internal/store"
)

// BuildPatch turns a validated form into the persistence payload. Fields
// that are meaningless for the person's attendance are forced to null no
// matter what the form holds: food options without a reception attendance,
// contact info without any attendance. Empty dietary text is stored as null.
// The invitee's name never appears in the patch; the store ignores names on
// non-editable slots anyway.
func BuildPatch(form *FormData) *store.HouseholdPatch {
	patch := &store.HouseholdPatch{
		Invitee: buildPersonPatch(&form.Invitee),
		Guests:  make([]store.PersonPatch, len(form.Guests)),
	}
	patch.Invitee.Phone = nilIfEmpty(form.Invitee.Phone)
	for i := range form.Guests {
		patch.Guests[i] = buildPersonPatch(&form.Guests[i])
	}
	return patch
}

func buildPersonPatch(p *PersonForm) store.PersonPatch {
	out := store.PersonPatch{
		AttendingCeremony:   cloneBool(p.AttendingCeremony),
		AttendingReception:  cloneBool(p.AttendingReception),
		AttendingBrunch:     cloneBool(p.AttendingBrunch),
		DietaryRestrictions: nilIfEmpty(p.DietaryRestrictions),
	}
	if isTrue(p.AttendingReception) && p.FoodOption != nil {
		opt := *p.FoodOption
		out.FoodOption = &opt
	}
	if p.attendingAny() {
		out.ContactInfo = nilIfEmpty(p.ContactInfo)
	}
	if p.NameEditable {
		out.Name = nilIfEmpty(p.Name)
	}
	return out
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
