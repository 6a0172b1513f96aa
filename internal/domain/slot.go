package domain

import (
	"fmt"
	"time"
)

// CandidateSlot represents a potentially bookable time unit
// Never persisted, recomputed on every query
type CandidateSlot struct {
	ProviderID string    `json:"providerId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// Duration returns the slot length
func (s CandidateSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Matches returns true if the slot has exactly the given start and end instants
func (s CandidateSlot) Matches(start, end time.Time) bool {
	return s.Start.Equal(start) && s.End.Equal(end)
}

// HasExactMatch reports whether any slot has exactly the given start and end
func HasExactMatch(slots []CandidateSlot, start, end time.Time) bool {
	for _, slot := range slots {
		if slot.Matches(start, end) {
			return true
		}
	}
	return false
}

// ValidateSlotDuration checks that d is a whole number of minutes within
// [MinSlotDurationMinutes, MaxSlotDurationMinutes]
func ValidateSlotDuration(d time.Duration) error {
	if d < MinSlotDurationMinutes*time.Minute || d > MaxSlotDurationMinutes*time.Minute {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidRequest, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if d%time.Minute != 0 {
		return fmt.Errorf("%w: slot duration must be a whole number of minutes", ErrInvalidRequest)
	}
	return nil
}
