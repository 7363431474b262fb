package rsvp

import (
	"fmt"

	"wedding-rsvp/internal/model"
)

// PersonForm is the editable slice of one person during an RSVP session.
// Attendance stays tri-state (nil = unanswered); optional strings are plain
// strings with "" standing in for null, which keeps form wiring simple.
// AllowedToAttendBrunch and NameEditable are carried from the record and are
// not editable.
type PersonForm struct {
	Name                  string            `json:"name"`
	NameEditable          bool              `json:"nameEditable"`
	AttendingCeremony     *bool             `json:"attendingCeremony"`
	AttendingReception    *bool             `json:"attendingReception"`
	AttendingBrunch       *bool             `json:"attendingBrunch"`
	AllowedToAttendBrunch bool              `json:"allowedToAttendBrunch"`
	FoodOption            *model.FoodOption `json:"foodOption"`
	DietaryRestrictions   string            `json:"dietaryRestrictions"`
	ContactInfo           string            `json:"contactInfo"`
	Phone                 string            `json:"phone,omitempty"`
}

// attendingAny reports whether any attendance flag is answered yes.
func (p *PersonForm) attendingAny() bool {
	return isTrue(p.AttendingCeremony) || isTrue(p.AttendingReception) || isTrue(p.AttendingBrunch)
}

// FormData is the in-memory form for a whole household. Guest order mirrors
// the record's guest order; guest numbering is positional and 1-based.
type FormData struct {
	Invitee PersonForm   `json:"invitee"`
	Guests  []PersonForm `json:"guests"`
}

// DeriveFormData derives form defaults from a persisted snapshot: unset
// tri-states stay nil, missing optional strings become "", and a stored food
// option outside the known set is coerced to nil. Pure and idempotent.
func DeriveFormData(rec *model.HouseholdRecord) *FormData {
	form := &FormData{
		Invitee: derivePersonForm(&rec.Invitee),
		Guests:  make([]PersonForm, len(rec.Guests)),
	}
	for i := range rec.Guests {
		form.Guests[i] = derivePersonForm(&rec.Guests[i])
	}
	return form
}

func derivePersonForm(p *model.Person) PersonForm {
	form := PersonForm{
		Name:                  strOrEmpty(p.Name),
		NameEditable:          p.IsNameEditable,
		AttendingCeremony:     cloneBool(p.AttendingCeremony),
		AttendingReception:    cloneBool(p.AttendingReception),
		AttendingBrunch:       cloneBool(p.AttendingBrunch),
		AllowedToAttendBrunch: p.AllowedToAttendBrunch,
		DietaryRestrictions:   strOrEmpty(p.DietaryRestrictions),
		ContactInfo:           strOrEmpty(p.ContactInfo),
		Phone:                 strOrEmpty(p.Phone),
	}
	if p.FoodOption != nil && model.ValidFoodOption(string(*p.FoodOption)) {
		opt := *p.FoodOption
		form.FoodOption = &opt
	}
	return form
}

// Field names one editable form field for the update transitions.
type Field int

const (
	FieldName Field = iota
	FieldAttendingCeremony
	FieldAttendingReception
	FieldAttendingBrunch
	FieldFoodOption
	FieldDietaryRestrictions
	FieldContactInfo
	FieldPhone
)

// setField replaces a single field value. A value of the wrong type for the
// field is a programming error, same as an out-of-range guest index.
func setField(p *PersonForm, field Field, value any) {
	switch field {
	case FieldName:
		p.Name = value.(string)
	case FieldAttendingCeremony:
		p.AttendingCeremony = asTriState(value)
	case FieldAttendingReception:
		p.AttendingReception = asTriState(value)
	case FieldAttendingBrunch:
		p.AttendingBrunch = asTriState(value)
	case FieldFoodOption:
		p.FoodOption = asFoodOption(value)
	case FieldDietaryRestrictions:
		p.DietaryRestrictions = value.(string)
	case FieldContactInfo:
		p.ContactInfo = value.(string)
	case FieldPhone:
		p.Phone = value.(string)
	default:
		panic(fmt.Sprintf("rsvp: unknown form field %d", field))
	}
}

func asTriState(value any) *bool {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		return &v
	case *bool:
		return cloneBool(v)
	}
	panic(fmt.Sprintf("rsvp: invalid tri-state value %T", value))
}

// asFoodOption coerces any value outside the known option set to unset, same
// as when deriving from a stored snapshot. Typed values get the same check as
// strings: JSON decoding produces FoodOption values without validating them.
func asFoodOption(value any) *model.FoodOption {
	switch v := value.(type) {
	case nil:
		return nil
	case model.FoodOption:
		if !model.ValidFoodOption(string(v)) {
			return nil
		}
		return &v
	case *model.FoodOption:
		if v == nil || !model.ValidFoodOption(string(*v)) {
			return nil
		}
		opt := *v
		return &opt
	case string:
		if !model.ValidFoodOption(v) {
			return nil
		}
		opt := model.FoodOption(v)
		return &opt
	}
	panic(fmt.Sprintf("rsvp: invalid food option value %T", value))
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
