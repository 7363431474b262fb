package rsvp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wedding-rsvp/internal/model"
	"wedding-rsvp/internal/store"
)

// State is the session's position in the editing lifecycle.
type State int

const (
	// StateEmpty means no record is loaded.
	StateEmpty State = iota
	// StateLoaded means a record and derived form data are present.
	StateLoaded
	// StateSubmitting means a write is in flight; further submits are
	// rejected until it resolves.
	StateSubmitting
	// StateSucceeded means the last submission was persisted. Cleared by
	// Reset or by any further edit.
	StateSucceeded
	// StateFailed means the last submission was rejected; the form data is
	// retained so the user can correct and retry.
	StateFailed
)

// ErrDeadlinePassed rejects a submission for a record that has become
// read-only. Checked before validation; no store access happens.
var ErrDeadlinePassed = errors.New("the RSVP deadline for this invitation has passed")

// ErrSubmitInFlight rejects a re-entrant Submit while one is pending.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// ErrNoRecord rejects a Submit before any record was loaded.
var ErrNoRecord = errors.New("no invitation loaded")

// ValidationError carries a user-correctable form error. It never reaches
// the store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Session is the household RSVP state machine for one editing session. It
// owns one record and its derived form, applies pure field transitions, and
// commits atomically through the injected store. Sessions are not shared
// across goroutines.
type Session struct {
	store  store.Store
	now    func() time.Time
	state  State
	record *model.HouseholdRecord
	form   *FormData
	errMsg string
}

// NewSession builds an empty session over the given store.
func NewSession(st store.Store) *Session {
	return &Session{store: st, now: time.Now, state: StateEmpty}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Record returns the loaded snapshot, or nil.
func (s *Session) Record() *model.HouseholdRecord { return s.record }

// Form returns the in-progress form data, or nil before Load.
func (s *Session) Form() *FormData { return s.form }

// ErrorMessage returns the message of the last failed submission, or "".
func (s *Session) ErrorMessage() string { return s.errMsg }

// Load replaces the session's form data with values derived from the
// snapshot and clears any error or success flag. Loading the same snapshot
// twice yields the same derived state.
func (s *Session) Load(rec *model.HouseholdRecord) {
	s.record = rec
	s.form = DeriveFormData(rec)
	s.state = StateLoaded
	s.errMsg = ""
}

// UpdateInvitee replaces one field on the invitee's form slice. Any edit
// after a successful submission drops the success flag.
func (s *Session) UpdateInvitee(field Field, value any) {
	s.requireLoaded()
	setField(&s.form.Invitee, field, value)
	s.edited()
}

// UpdateGuest replaces one field on guests[index]. An out-of-range index is
// a programming error and panics.
func (s *Session) UpdateGuest(index int, field Field, value any) {
	s.requireLoaded()
	if index < 0 || index >= len(s.form.Guests) {
		panic(fmt.Sprintf("rsvp: guest index %d out of range (have %d guests)", index, len(s.form.Guests)))
	}
	setField(&s.form.Guests[index], field, value)
	s.edited()
}

// Submit validates the form and commits it through the store. The deadline
// is checked first, before validation; validation failures never touch
// storage. A rejected submission keeps the record and edits intact so the
// user can correct and retry.
func (s *Session) Submit(ctx context.Context) error {
	if s.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	if s.record == nil {
		return ErrNoRecord
	}

	if s.record.DeadlinePassed(s.now()) {
		s.fail(ErrDeadlinePassed.Error())
		return ErrDeadlinePassed
	}
	if msg := Validate(s.form); msg != "" {
		s.fail(msg)
		return &ValidationError{Message: msg}
	}

	s.state = StateSubmitting
	patch := BuildPatch(s.form)
	if err := s.store.ApplyResponse(ctx, s.record.Key(), patch); err != nil {
		s.fail(userMessage(err))
		return fmt.Errorf("failed to submit RSVP: %w", err)
	}

	s.state = StateSucceeded
	s.errMsg = ""
	return nil
}

// Reset returns to Empty unconditionally, discarding all in-memory state.
func (s *Session) Reset() {
	s.state = StateEmpty
	s.record = nil
	s.form = nil
	s.errMsg = ""
}

func (s *Session) requireLoaded() {
	if s.form == nil {
		panic("rsvp: field update before a record was loaded")
	}
}

// edited records a form change: a Succeeded or Failed display state returns
// to Loaded and the stale message is dropped.
func (s *Session) edited() {
	s.state = StateLoaded
	s.errMsg = ""
}

func (s *Session) fail(msg string) {
	s.state = StateFailed
	s.errMsg = msg
}

// userMessage maps store failures to something a guest can act on; detail
// stays in the logs at the store boundary.
func userMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		return "We could not reach the guest list right now. Please try again in a moment."
	case errors.Is(err, store.ErrNotFound):
		return "We could not find your invitation anymore. Please reload and try again."
	default:
		return "Something went wrong saving your RSVP. Please try again."
	}
}
