package rsvp

import (
	"fmt"
	"regexp"

	"wedding-rsvp/internal/model"
)

// emailRe checks the local@domain.tld shape. Anything stricter rejects real
// addresses; anything looser lets through strings we cannot mail.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether s looks like a deliverable email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Validate checks a completed form against the attendance-contingent rules.
// It returns "" when the form is valid, otherwise the first failing check's
// message; one error is surfaced at a time. Guest messages identify the
// guest by 1-based position.
func Validate(form *FormData) string {
	inv := &form.Invitee

	if inv.AttendingCeremony == nil {
		return "Please answer whether you will attend the ceremony."
	}
	if inv.AttendingReception == nil {
		return "Please answer whether you will attend the reception."
	}
	if isTrue(inv.AttendingReception) && inv.FoodOption == nil {
		return "Please choose a dinner option for the reception."
	}
	if inv.ContactInfo == "" || !ValidEmail(inv.ContactInfo) {
		return "Please provide a valid email address."
	}
	// Redundant with the unconditional email check above, but kept: an
	// undecided dinner choice always needs a way to follow up.
	if isTrue(inv.AttendingReception) && inv.FoodOption != nil &&
		*inv.FoodOption == model.FoodUnknown && inv.ContactInfo == "" {
		return "Please provide contact info so we can follow up about your dinner choice."
	}
	if inv.AllowedToAttendBrunch && inv.AttendingBrunch == nil {
		return "Please answer whether you will attend the brunch."
	}

	for i := range form.Guests {
		g := &form.Guests[i]
		n := i + 1

		if g.AttendingCeremony == nil {
			return fmt.Sprintf("Guest %d: please answer whether they will attend the ceremony.", n)
		}
		if g.AttendingReception == nil {
			return fmt.Sprintf("Guest %d: please answer whether they will attend the reception.", n)
		}
		if isTrue(g.AttendingReception) && g.FoodOption == nil {
			return fmt.Sprintf("Guest %d: please choose a dinner option for the reception.", n)
		}
		if g.FoodOption != nil && *g.FoodOption == model.FoodUnknown && g.ContactInfo == "" {
			return fmt.Sprintf("Guest %d: please provide contact info so we can follow up about their dinner choice.", n)
		}
		if g.ContactInfo != "" && !ValidEmail(g.ContactInfo) {
			return fmt.Sprintf("Guest %d: please provide a valid email address.", n)
		}
		if g.AllowedToAttendBrunch && g.AttendingBrunch == nil {
			return fmt.Sprintf("Guest %d: please answer whether they will attend the brunch.", n)
		}
		if g.attendingAny() && g.NameEditable && g.Name == "" {
			return fmt.Sprintf("Guest %d: please provide a name.", n)
		}
	}

	return ""
}
