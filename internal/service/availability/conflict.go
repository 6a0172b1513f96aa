package availability

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Overlaps проверяет пересечение слота [s1, e1) с записью [s2, e2)
// Пересечение есть, если выполняется хотя бы одно:
// - s1 ∈ [s2, e2)
// - e1 ∈ (s2, e2]
// - слот целиком накрывает запись: s1 <= s2 и e1 >= e2
//
// Примеры для записи 10:00-10:30:
// - слот 10:00-10:30 → пересечение
// - слот 09:30-10:00 → нет (граничат)
// - слот 10:30-11:00 → нет (граничат)
// - слот 09:00-11:00 → пересечение (накрывает)
func Overlaps(slot domain.CandidateSlot, appointment *domain.Appointment) bool {
	s1, e1 := slot.Start, slot.End
	s2, e2 := appointment.Start, appointment.End

	startsInside := !s1.Before(s2) && s1.Before(e2)
	endsInside := e1.After(s2) && !e1.After(e2)
	covers := !s1.After(s2) && !e1.Before(e2)

	return startsInside || endsInside || covers
}

// FilterConflicts убирает слоты, пересекающиеся с любой неотмененной записью
// Порядок оставшихся слотов сохраняется
func FilterConflicts(slots []domain.CandidateSlot, appointments []*domain.Appointment) []domain.CandidateSlot {
	result := make([]domain.CandidateSlot, 0, len(slots))

	for _, slot := range slots {
		conflict := false
		for _, appointment := range appointments {
			if appointment.IsCancelled() {
				continue
			}
			if Overlaps(slot, appointment) {
				conflict = true
				break
			}
		}
		if !conflict {
			result = append(result, slot)
		}
	}

	return result
}
