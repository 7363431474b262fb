package model

import (
	"time"
)

// FoodOption is the closed set of reception dinner choices. Unknown is a
// real choice ("I'll decide later"), not a zero value.
type FoodOption string

const (
	FoodSalmon            FoodOption = "salmon"
	FoodChicken           FoodOption = "chicken"
	FoodSteak             FoodOption = "steak"
	FoodVegetarianRisotto FoodOption = "vegetarian-risotto"
	FoodUnknown           FoodOption = "unknown"
)

// ValidFoodOption reports whether s names a known food option.
func ValidFoodOption(s string) bool {
	switch FoodOption(s) {
	case FoodSalmon, FoodChicken, FoodSteak, FoodVegetarianRisotto, FoodUnknown:
		return true
	}
	return false
}

// Person is one respondent on a household record. Attendance fields are
// tri-state: nil means the person has not answered yet.
type Person struct {
	Name                  *string     `json:"name"`
	AttendingCeremony     *bool       `json:"attendingCeremony"`
	AttendingReception    *bool       `json:"attendingReception"`
	AttendingBrunch       *bool       `json:"attendingBrunch"`
	AllowedToAttendBrunch bool        `json:"allowedToAttendBrunch"`
	FoodOption            *FoodOption `json:"foodOption"`
	DietaryRestrictions   *string     `json:"dietaryRestrictions"`
	ContactInfo           *string     `json:"contactInfo"`
	Phone                 *string     `json:"phone,omitempty"`
	IsNameEditable        bool        `json:"isNameEditable"`
}

// DisplayName returns the person's name or an empty string for an unnamed
// plus-one slot.
func (p *Person) DisplayName() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}

// HouseholdRecord is the unit of RSVP: one invitee plus zero or more guests
// sharing an invite code. Guest order is insertion order and guest numbering
// is positional (1-based), so the slice must never be reordered.
type HouseholdRecord struct {
	InviteCode   string     `json:"inviteCode"`
	RSVPDeadline time.Time  `json:"rsvpDeadline"`
	LastModified *time.Time `json:"lastModified"`
	Invitee      Person     `json:"invitee"`
	Guests       []Person   `json:"guests"`
}

// Key returns the storage key for the record (invite code with the dash
// removed).
func (h *HouseholdRecord) Key() string {
	return StorageKey(h.InviteCode)
}

// DeadlinePassed reports whether the record is read-only at the given time.
// The record becomes read-only only once now exceeds the deadline; at the
// deadline instant itself it is still writable.
func (h *HouseholdRecord) DeadlinePassed(now time.Time) bool {
	return now.After(h.RSVPDeadline)
}
