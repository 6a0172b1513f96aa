package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func clock(hour, minute int) time.Time {
	return time.Date(2026, 11, 2, hour, minute, 0, 0, time.UTC)
}

func slotAt(startHour, startMinute, endHour, endMinute int) domain.CandidateSlot {
	return domain.CandidateSlot{ProviderID: "p1", Start: clock(startHour, startMinute), End: clock(endHour, endMinute)}
}

func appointmentAt(startHour, startMinute, endHour, endMinute int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         "a1",
		ProviderID: "p1",
		Start:      clock(startHour, startMinute),
		End:        clock(endHour, endMinute),
		Status:     status,
	}
}

func TestOverlaps(t *testing.T) {
	appointment := appointmentAt(10, 0, 10, 30, domain.StatusScheduled)

	tests := []struct {
		name     string
		slot     domain.CandidateSlot
		expected bool
	}{
		{"same interval", slotAt(10, 0, 10, 30), true},
		{"ends at appointment start", slotAt(9, 30, 10, 0), false},
		{"starts at appointment end", slotAt(10, 30, 11, 0), false},
		{"starts inside", slotAt(10, 15, 10, 45), true},
		{"ends inside", slotAt(9, 45, 10, 15), true},
		{"ends at appointment end", slotAt(10, 15, 10, 30), true},
		{"covers appointment", slotAt(9, 0, 11, 0), true},
		{"inside appointment", slotAt(10, 5, 10, 20), true},
		{"far before", slotAt(8, 0, 8, 30), false},
		{"far after", slotAt(11, 0, 11, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.slot, appointment))
		})
	}
}

func TestFilterConflicts(t *testing.T) {
	slots := []domain.CandidateSlot{
		slotAt(9, 0, 9, 30),
		slotAt(9, 30, 10, 0),
		slotAt(10, 0, 10, 30),
		slotAt(10, 30, 11, 0),
	}

	t.Run("active appointment blocks its slot", func(t *testing.T) {
		got := FilterConflicts(slots, []*domain.Appointment{appointmentAt(10, 0, 10, 30, domain.StatusConfirmed)})
		assert.Equal(t, []domain.CandidateSlot{slots[0], slots[1], slots[3]}, got)
	})

	t.Run("cancelled appointment never blocks", func(t *testing.T) {
		got := FilterConflicts(slots, []*domain.Appointment{appointmentAt(9, 0, 11, 0, domain.StatusCancelled)})
		assert.Equal(t, slots, got)
	})

	t.Run("long appointment blocks several slots", func(t *testing.T) {
		got := FilterConflicts(slots, []*domain.Appointment{appointmentAt(9, 15, 10, 15, domain.StatusScheduled)})
		assert.Equal(t, []domain.CandidateSlot{slots[3]}, got)
	})

	t.Run("no appointments", func(t *testing.T) {
		assert.Equal(t, slots, FilterConflicts(slots, nil))
	})
}
