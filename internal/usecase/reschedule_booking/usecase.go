package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
)

const (
	operationReschedule = "reschedule"
	outcomeSuccess      = "success"
)

// UseCase use case для переноса записи на другое время
type UseCase struct {
	appointmentRepo   AppointmentRepository
	availability      AvailabilityService
	lockManager       LockManager
	metrics           Metrics
	timeProvider      TimeProvider
	logger            Logger
	alternativesLimit int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityService,
	lockManager LockManager,
	metrics Metrics,
	logger Logger,
	alternativesLimit int,
) *UseCase {
	if alternativesLimit <= 0 {
		alternativesLimit = domain.DefaultAlternativesLimit
	}
	return &UseCase{
		appointmentRepo:   appointmentRepo,
		availability:      availability,
		lockManager:       lockManager,
		metrics:           metrics,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
		alternativesLimit: alternativesLimit,
	}
}

// SetTimeProvider подменяет источник текущего времени
func (uc *UseCase) SetTimeProvider(tp TimeProvider) {
	uc.timeProvider = tp
}

// Execute переносит запись на новое время
// ID, участники и статус записи сохраняются, меняются только start, end и updatedAt
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	appointment, err := uc.reschedule(ctx, req)
	if uc.metrics != nil {
		outcome := outcomeSuccess
		if err != nil {
			outcome = strings.ToLower(domain.ErrorCode(err))
		}
		uc.metrics.RecordBookingOutcome(operationReschedule, outcome)
	}
	return appointment, err
}

func (uc *UseCase) reschedule(ctx context.Context, req *Request) (*domain.Appointment, error) {
	if req == nil || req.AppointmentID == "" {
		uc.logger.Warn("RescheduleBooking: appointment id is required")
		return nil, fmt.Errorf("%w: appointmentId is required", domain.ErrInvalidRequest)
	}

	uc.logger.Info("RescheduleBooking: appointment id=%s, start=%s, end=%s",
		req.AppointmentID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Получаем запись и проверяем статус
	current, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, uc.repositoryError(req.AppointmentID, err)
	}

	if err := validateStatus(current); err != nil {
		uc.logger.Warn("RescheduleBooking: %v", err)
		return nil, err
	}

	// 2. Валидация нового времени
	now := uc.timeProvider.Now()
	if err := validateTimes(req, now); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 3. Проверка слота и обновление под блокировкой провайдера
	err = uc.lockManager.DoSerializable(ctx, current.ProviderID, func(lockCtx context.Context) error {
		duration := req.End.Sub(req.Start)

		slots, err := uc.availability.DaySlotsIgnoring(lockCtx, current.ProviderID, req.Start, duration, current.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidRequest) {
				uc.logger.Warn("RescheduleBooking: provider=%s: %v", current.ProviderID, err)
				return err
			}
			uc.logger.Error("RescheduleBooking: failed to list slots for provider=%s: %v", current.ProviderID, err)
			return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}

		if !domain.HasExactMatch(slots, req.Start, req.End) {
			uc.logger.Warn("RescheduleBooking: no candidate matches provider=%s start=%s end=%s",
				current.ProviderID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

			alternatives, err := uc.availability.NextAvailable(lockCtx, current.ProviderID, duration, uc.alternativesLimit)
			if err != nil {
				uc.logger.Error("RescheduleBooking: failed to get alternatives: %v", err)
				return fmt.Errorf("%w: failed to get alternatives: %v", ErrInternal, err)
			}
			return &domain.SlotUnavailableError{Alternatives: alternatives}
		}

		// Статус перепроверяется в момент записи: запись могли отменить параллельно
		updated, err := uc.appointmentRepo.Update(lockCtx, current.ID, func(a *domain.Appointment) error {
			if err := validateStatus(a); err != nil {
				return err
			}
			a.Start = req.Start
			a.End = req.End
			a.UpdatedAt = now
			return nil
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyCancelled) || errors.Is(err, domain.ErrInvalidRequest) {
				uc.logger.Warn("RescheduleBooking: %v", err)
				return err
			}
			return uc.repositoryError(current.ID, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			uc.logger.Error("RescheduleBooking: provider=%s lock wait aborted: %v", current.ProviderID, err)
			return nil, fmt.Errorf("%w: lock wait aborted: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled appointment id=%s", result.ID)
	return result, nil
}

func (uc *UseCase) repositoryError(id string, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		uc.logger.Warn("RescheduleBooking: appointment id=%s not found", id)
		return fmt.Errorf("%w: appointment id=%s", domain.ErrNotFound, id)
	}
	uc.logger.Error("RescheduleBooking: repository error for appointment id=%s: %v", id, err)
	return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
}
