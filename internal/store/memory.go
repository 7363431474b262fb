package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"wedding-rsvp/internal/model"
)

// Memory is an in-memory Store for tests and local development. It applies
// the same patch rules as the Postgres store and stamps LastModified from a
// replaceable clock.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*model.HouseholdRecord

	// Now supplies the server-side timestamp for ApplyResponse.
	Now func() time.Time

	// Err, when set, is returned by every operation. Lets tests exercise
	// the unavailable/unknown error paths.
	Err error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]*model.HouseholdRecord),
		Now:     time.Now,
	}
}

func (s *Memory) Get(ctx context.Context, key string) (*model.HouseholdRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	rec, ok := s.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(rec)
}

func (s *Memory) QueryActive(ctx context.Context, now time.Time) ([]*model.HouseholdRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var records []*model.HouseholdRecord
	for _, rec := range s.records {
		if !rec.RSVPDeadline.Before(now) {
			clone, err := cloneRecord(rec)
			if err != nil {
				return nil, err
			}
			records = append(records, clone)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key() < records[j].Key()
	})
	return records, nil
}

func (s *Memory) ApplyResponse(ctx context.Context, key string, patch *HouseholdPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	rec, ok := s.records[key]
	if !ok {
		return ErrNotFound
	}
	updated, err := cloneRecord(rec)
	if err != nil {
		return err
	}
	if err := applyPatch(updated, patch); err != nil {
		return err
	}
	now := s.Now()
	updated.LastModified = &now
	s.records[key] = updated
	return nil
}

func (s *Memory) Create(ctx context.Context, rec *model.HouseholdRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if rec.InviteCode == "" {
		code, err := model.GenerateInviteCode()
		if err != nil {
			return err
		}
		rec.InviteCode = code
	}
	if _, exists := s.records[rec.Key()]; exists {
		return fmt.Errorf("invite code already in use: %s", rec.InviteCode)
	}
	clone, err := cloneRecord(rec)
	if err != nil {
		return err
	}
	s.records[rec.Key()] = clone
	return nil
}

func (s *Memory) ListAll(ctx context.Context) ([]*model.HouseholdRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	records := make([]*model.HouseholdRecord, 0, len(s.records))
	for _, rec := range s.records {
		clone, err := cloneRecord(rec)
		if err != nil {
			return nil, err
		}
		records = append(records, clone)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key() < records[j].Key()
	})
	return records, nil
}

// cloneRecord deep-copies through JSON so callers can never mutate stored
// state behind the store's back.
func cloneRecord(rec *model.HouseholdRecord) (*model.HouseholdRecord, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode household: %w", err)
	}
	clone := &model.HouseholdRecord{}
	if err := json.Unmarshal(data, clone); err != nil {
		return nil, fmt.Errorf("failed to decode household: %w", err)
	}
	return clone, nil
}
