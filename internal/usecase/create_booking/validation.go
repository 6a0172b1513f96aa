package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// validateRequest проверяет заявку в строгом порядке:
// обязательные поля, порядок start/end, момент начала относительно now
func validateRequest(req *Request, now time.Time) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", domain.ErrInvalidRequest)
	}

	if req.ProviderID == "" {
		return fmt.Errorf("%w: providerId is required", domain.ErrInvalidRequest)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", domain.ErrInvalidRequest)
	}

	if len(ptr.Value(req.Reason)) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", domain.ErrInvalidRequest, domain.MaxReasonLength)
	}

	if len(ptr.Value(req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", domain.ErrInvalidRequest, domain.MaxNotesLength)
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
