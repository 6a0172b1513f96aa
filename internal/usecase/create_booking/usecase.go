package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	operationBook       = "book"
	operationBatchEntry = "batch"
	outcomeSuccess      = "success"
)

// UseCase use case для создания записи
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
// alternativesLimit ограничивает число предлагаемых слотов при отказе, 0 означает значение по умолчанию
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

// Execute выполняет use case создания записи
// Пересчет слотов и сохранение выполняются под блокировкой провайдера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	appointment, err := uc.book(ctx, req)
	uc.recordOutcome(operationBook, err)
	return appointment, err
}

// ExecuteBatch последовательно применяет Execute к каждой заявке
// Ошибка одной заявки не прерывает обработку остальных
func (uc *UseCase) ExecuteBatch(ctx context.Context, reqs []*Request) ([]BatchResult, error) {
	if len(reqs) == 0 {
		return []BatchResult{}, nil
	}
	if len(reqs) > domain.MaxBatchSize {
		return nil, fmt.Errorf("%w: batch exceeds %d requests", domain.ErrInvalidRequest, domain.MaxBatchSize)
	}

	uc.logger.Info("CreateBookingBatch: processing %d requests", len(reqs))

	results := make([]BatchResult, 0, len(reqs))
	succeeded := 0
	for i, req := range reqs {
		appointment, err := uc.book(ctx, req)
		uc.recordOutcome(operationBatchEntry, err)
		if err == nil {
			succeeded++
		}
		results = append(results, BatchResult{Index: i, Appointment: appointment, Err: err})
	}

	uc.logger.Info("CreateBookingBatch: %d/%d requests succeeded", succeeded, len(reqs))
	return results, nil
}

func (uc *UseCase) book(ctx context.Context, req *Request) (*domain.Appointment, error) {
	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: provider=%s, start=%s, end=%s",
		req.ProviderID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	var result *domain.Appointment

	// 2. Повторная проверка слота и сохранение под блокировкой провайдера
	err := uc.lockManager.DoSerializable(ctx, req.ProviderID, func(lockCtx context.Context) error {
		duration := req.End.Sub(req.Start)

		// 2.1. Пересчитываем слоты на день начала записи
		slots, err := uc.availability.DaySlots(lockCtx, req.ProviderID, req.Start, duration)
		if err != nil {
			return uc.availabilityError("CreateBooking", req.ProviderID, err)
		}

		// 2.2. Требуем точного совпадения start и end с кандидатом
		if !domain.HasExactMatch(slots, req.Start, req.End) {
			uc.logger.Warn("CreateBooking: no candidate matches provider=%s start=%s end=%s",
				req.ProviderID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))
			return uc.slotUnavailable(lockCtx, req.ProviderID, duration)
		}

		// 2.3. Создаем запись
		appointment := &domain.Appointment{
			ID:          uuid.NewString(),
			ProviderID:  req.ProviderID,
			OwnerName:   req.OwnerName,
			SubjectName: req.SubjectName,
			Reason:      req.Reason,
			Start:       req.Start,
			End:         req.End,
			Status:      domain.StatusScheduled,
			Notes:       req.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		created, err := uc.appointmentRepo.Create(lockCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			uc.logger.Error("CreateBooking: provider=%s lock wait aborted: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: lock wait aborted: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%s", result.ID)
	return result, nil
}

// slotUnavailable собирает ближайшие свободные слоты для ответа с отказом
func (uc *UseCase) slotUnavailable(ctx context.Context, providerID string, duration time.Duration) error {
	alternatives, err := uc.availability.NextAvailable(ctx, providerID, duration, uc.alternativesLimit)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get alternatives for provider=%s: %v", providerID, err)
		return fmt.Errorf("%w: failed to get alternatives: %v", ErrInternal, err)
	}
	return &domain.SlotUnavailableError{Alternatives: alternatives}
}

func (uc *UseCase) availabilityError(op, providerID string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidRequest) {
		uc.logger.Warn("%s: provider=%s: %v", op, providerID, err)
		return err
	}
	uc.logger.Error("%s: failed to list slots for provider=%s: %v", op, providerID, err)
	return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
}

func (uc *UseCase) recordOutcome(operation string, err error) {
	if uc.metrics == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = strings.ToLower(domain.ErrorCode(err))
	}
	uc.metrics.RecordBookingOutcome(operation, outcome)
}
