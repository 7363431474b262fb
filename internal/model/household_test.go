package model

import (
	"testing"
	"time"
)

func TestDeadlinePassedBoundary(t *testing.T) {
	deadline := time.Date(2026, 8, 19, 23, 59, 59, 0, time.UTC)
	rec := &HouseholdRecord{RSVPDeadline: deadline}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before deadline", deadline.Add(-time.Second), false},
		{"at the deadline instant", deadline, false},
		{"after deadline", deadline.Add(time.Nanosecond), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rec.DeadlinePassed(tt.now); got != tt.want {
				t.Errorf("DeadlinePassed(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
