package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	providerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// Service сервис жизненного цикла записей
type Service struct {
	appointmentRepo AppointmentRepository
	providerRepo    ProviderRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	providerRepo ProviderRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		providerRepo:    providerRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// SetTimeProvider подменяет источник текущего времени
func (s *Service) SetTimeProvider(tp TimeProvider) {
	s.timeProvider = tp
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	if id == "" {
		return nil, fmt.Errorf("%w: appointment id is required", domain.ErrInvalidRequest)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repositoryError("GetByID", id, err)
	}

	return appointment, nil
}

// List получает записи провайдера, отсортированные по времени начала
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]*domain.Appointment, error) {
	s.logger.Info("List: fetching appointments for provider=%s, includeCancelled=%t", req.ProviderID, req.IncludeCancelled)

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		s.logger.Warn("List: invalid range for provider=%s", req.ProviderID)
		return nil, fmt.Errorf("%w: to must not be before from", domain.ErrInvalidRequest)
	}

	if err := s.ensureProvider(ctx, "List", req.ProviderID); err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.GetByProviderWithFilter(ctx, req.ToFilter())
	if err != nil {
		s.logger.Error("List: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d appointments for provider=%s", len(appointments), req.ProviderID)
	return appointments, nil
}

// Cancel отменяет запись
// Проверка статуса и сохранение выполняются атомарно внутри репозитория
func (s *Service) Cancel(ctx context.Context, id string, reason *string) (*domain.Appointment, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	if id == "" {
		return nil, fmt.Errorf("%w: appointment id is required", domain.ErrInvalidRequest)
	}
	if len(ptr.Value(reason)) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", domain.ErrInvalidRequest, domain.MaxReasonLength)
	}

	now := s.timeProvider.Now()

	cancelled, err := s.appointmentRepo.Update(ctx, id, func(a *domain.Appointment) error {
		switch {
		case a.IsCancelled():
			return fmt.Errorf("%w: appointment id=%s", domain.ErrAlreadyCancelled, a.ID)
		case a.Start.Before(now):
			return fmt.Errorf("%w: appointment id=%s started at %s", domain.ErrInThePast, a.ID, a.Start.Format(time.RFC3339))
		case !a.CanBeCancelled():
			return fmt.Errorf("%w: appointment id=%s has status %s", domain.ErrInvalidRequest, a.ID, a.Status)
		}

		a.Status = domain.StatusCancelled
		a.AppendNote(ptr.Value(reason))
		a.UpdatedAt = now
		return nil
	})
	if err != nil {
		if isTransitionError(err) {
			s.logger.Warn("Cancel: %v", err)
			return nil, err
		}
		return nil, s.repositoryError("Cancel", id, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return cancelled, nil
}

// CancelAllForProviderOnDate отменяет все неотмененные записи провайдера на календарный день
// Каждая запись отменяется независимо, результат возвращается по каждой
func (s *Service) CancelAllForProviderOnDate(ctx context.Context, providerID string, date time.Time, reason *string) ([]models.CancelResult, error) {
	s.logger.Info("CancelAllForProviderOnDate: provider=%s, date=%s", providerID, date.Format(domain.DateFormat))

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidRequest)
	}

	if err := s.ensureProvider(ctx, "CancelAllForProviderOnDate", providerID); err != nil {
		return nil, err
	}

	from := domain.StartOfDay(date)
	to := domain.EndOfDay(date)
	appointments, err := s.appointmentRepo.GetByProviderWithFilter(ctx, domain.AppointmentsFilter{
		ProviderID: providerID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		s.logger.Error("CancelAllForProviderOnDate: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: CancelAllForProviderOnDate - repository error: %v", ErrInternal, err)
	}

	results := make([]models.CancelResult, 0, len(appointments))
	failed := 0
	for _, a := range appointments {
		cancelled, err := s.Cancel(ctx, a.ID, reason)
		if err != nil {
			failed++
		}
		results = append(results, models.CancelResult{AppointmentID: a.ID, Appointment: cancelled, Err: err})
	}

	s.logger.Info("CancelAllForProviderOnDate: provider=%s, %d processed, %d failed", providerID, len(results), failed)
	return results, nil
}

// Confirm подтверждает запись (scheduled → confirmed)
func (s *Service) Confirm(ctx context.Context, id string) (*domain.Appointment, error) {
	s.logger.Info("Confirm: confirming appointment id=%s", id)

	if id == "" {
		return nil, fmt.Errorf("%w: appointment id is required", domain.ErrInvalidRequest)
	}

	now := s.timeProvider.Now()

	confirmed, err := s.appointmentRepo.Update(ctx, id, func(a *domain.Appointment) error {
		switch a.Status {
		case domain.StatusScheduled:
		case domain.StatusCancelled:
			return fmt.Errorf("%w: appointment id=%s", domain.ErrAlreadyCancelled, a.ID)
		default:
			return fmt.Errorf("%w: appointment id=%s has status %s", domain.ErrInvalidRequest, a.ID, a.Status)
		}

		a.Status = domain.StatusConfirmed
		a.UpdatedAt = now
		return nil
	})
	if err != nil {
		if isTransitionError(err) {
			s.logger.Warn("Confirm: %v", err)
			return nil, err
		}
		return nil, s.repositoryError("Confirm", id, err)
	}

	s.logger.Info("Confirm: successfully confirmed appointment id=%s", id)
	return confirmed, nil
}

// CompleteElapsed переводит в completed все активные записи, закончившиеся до текущего момента
func (s *Service) CompleteElapsed(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	count, err := s.appointmentRepo.UpdateWhere(ctx,
		func(a *domain.Appointment) bool {
			return a.CanBeCancelled() && a.End.Before(now)
		},
		func(a *domain.Appointment) {
			a.Status = domain.StatusCompleted
			a.UpdatedAt = now
		},
	)
	if err != nil {
		s.logger.Error("CompleteElapsed: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompleteElapsed - repository error: %v", ErrInternal, err)
	}

	if count > 0 {
		s.logger.Info("CompleteElapsed: %d appointments completed", count)
	}
	return count, nil
}

func (s *Service) ensureProvider(ctx context.Context, op, providerID string) error {
	if providerID == "" {
		return fmt.Errorf("%w: provider id is required", domain.ErrInvalidRequest)
	}

	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("%s: provider id=%s not found", op, providerID)
			return fmt.Errorf("%w: provider id=%s", domain.ErrNotFound, providerID)
		}
		s.logger.Error("%s: failed to get provider id=%s: %v", op, providerID, err)
		return fmt.Errorf("%w: %s - provider repository error: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) repositoryError(op, id string, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%s not found", op, id)
		return fmt.Errorf("%w: appointment id=%s", domain.ErrNotFound, id)
	}
	s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func isTransitionError(err error) bool {
	return errors.Is(err, domain.ErrAlreadyCancelled) ||
		errors.Is(err, domain.ErrInvalidRequest) ||
		errors.Is(err, domain.ErrInThePast)
}
