package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateStatus проверяет, что запись можно переносить
func validateStatus(appointment *domain.Appointment) error {
	switch appointment.Status {
	case domain.StatusCancelled:
		return fmt.Errorf("%w: appointment id=%s", domain.ErrAlreadyCancelled, appointment.ID)
	case domain.StatusCompleted:
		return fmt.Errorf("%w: appointment id=%s is completed", domain.ErrInvalidRequest, appointment.ID)
	}
	if !appointment.CanBeRescheduled() {
		return fmt.Errorf("%w: appointment id=%s has status %s", domain.ErrInvalidRequest, appointment.ID, appointment.Status)
	}
	return nil
}

// validateTimes проверяет новое время в том же порядке, что и при создании записи
func validateTimes(req *Request, now time.Time) error {
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", domain.ErrInvalidRequest)
	}

	if !req.End.After(req.Start) {
		return fmt.Errorf("%w: end must be after start", domain.ErrInvalidRequest)
	}

	if err := domain.ValidateSlotDuration(req.End.Sub(req.Start)); err != nil {
		return err
	}

	if req.Start.Before(now) {
		return fmt.Errorf("%w: start %s is before now", domain.ErrInThePast, req.Start.Format(time.RFC3339))
	}

	return nil
}
