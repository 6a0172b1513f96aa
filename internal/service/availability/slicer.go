package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SliceBlock нарезает блок [start, end) на смежные слоты длиной duration
// Шаг равен duration от начала блока, остаток короче duration отбрасывается
func SliceBlock(providerID string, start, end time.Time, duration time.Duration) []domain.CandidateSlot {
	slots := make([]domain.CandidateSlot, 0)
	if duration <= 0 || !end.After(start) {
		return slots
	}

	for slotStart := start; ; slotStart = slotStart.Add(duration) {
		slotEnd := slotStart.Add(duration)
		if slotEnd.After(end) {
			break
		}
		slots = append(slots, domain.CandidateSlot{
			ProviderID: providerID,
			Start:      slotStart,
			End:        slotEnd,
		})
	}

	return slots
}
