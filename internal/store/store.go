package store

import (
	"context"
	"errors"
	"time"

	"wedding-rsvp/internal/model"
)

// ErrNotFound is returned when no household exists under the requested key.
var ErrNotFound = errors.New("household not found")

// ErrUnavailable is returned for transient connectivity failures. The user
// may retry; callers must not retry automatically.
var ErrUnavailable = errors.New("store unavailable")

// PersonPatch carries the replacement values for one person's
// session-mutable fields. Every field replaces the stored value, nil
// included. Name is applied only to slots the stored record marks as
// name-editable; the invitee's name is never written.
type PersonPatch struct {
	Name                *string
	AttendingCeremony   *bool
	AttendingReception  *bool
	AttendingBrunch     *bool
	FoodOption          *model.FoodOption
	DietaryRestrictions *string
	ContactInfo         *string
	Phone               *string
}

// HouseholdPatch is the payload of one RSVP submission. Guests must line up
// positionally with the stored record's guest slots.
type HouseholdPatch struct {
	Invitee PersonPatch
	Guests  []PersonPatch
}

// Store is the document-store collaborator for household records. The
// resolver and the RSVP session receive it by constructor injection.
type Store interface {
	// Get returns the household stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (*model.HouseholdRecord, error)

	// QueryActive returns every household whose RSVP deadline has not yet
	// passed (deadline at or after now). Past-deadline records are reachable
	// only by code.
	QueryActive(ctx context.Context, now time.Time) ([]*model.HouseholdRecord, error)

	// ApplyResponse atomically replaces the session-mutable fields of the
	// household under key and stamps LastModified with the store-side
	// current time. Last writer wins; there is no version check.
	ApplyResponse(ctx context.Context, key string, patch *HouseholdPatch) error

	// Create stores a new household record. The invite code must be unique.
	Create(ctx context.Context, rec *model.HouseholdRecord) error

	// ListAll returns every household record, for the admin views.
	ListAll(ctx context.Context) ([]*model.HouseholdRecord, error)
}

// applyPatch merges a submission into a stored record in place. Shared by
// the store implementations so both enforce the same immutability rules.
func applyPatch(rec *model.HouseholdRecord, patch *HouseholdPatch) error {
	if len(patch.Guests) != len(rec.Guests) {
		return errors.New("guest count mismatch between patch and stored record")
	}
	applyPersonPatch(&rec.Invitee, &patch.Invitee)
	rec.Invitee.Phone = patch.Invitee.Phone
	for i := range rec.Guests {
		applyPersonPatch(&rec.Guests[i], &patch.Guests[i])
	}
	return nil
}

func applyPersonPatch(p *model.Person, patch *PersonPatch) {
	if p.IsNameEditable {
		p.Name = patch.Name
	}
	p.AttendingCeremony = patch.AttendingCeremony
	p.AttendingReception = patch.AttendingReception
	p.AttendingBrunch = patch.AttendingBrunch
	p.FoodOption = patch.FoodOption
	p.DietaryRestrictions = patch.DietaryRestrictions
	p.ContactInfo = patch.ContactInfo
}
