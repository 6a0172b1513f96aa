package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	providerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/provider"
)

// Области выдачи слотов для метрик
const (
	ScopeWindow       = "window"
	ScopeDay          = "day"
	ScopeAlternatives = "alternatives"
)

// Service собирает доступные слоты провайдера
// Слоты нигде не кэшируются и пересчитываются при каждом вызове
type Service struct {
	providerRepo    ProviderRepository
	appointmentRepo AppointmentRepository
	expander        *Expander
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
	horizonDays     int
}

// NewService создает новый экземпляр сервиса доступности
// horizonDays задает горизонт поиска ближайших слотов, 0 означает значение по умолчанию
func NewService(
	providerRepo ProviderRepository,
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	logger Logger,
	horizonDays int,
) *Service {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultAlternativesHorizonDays
	}
	return &Service{
		providerRepo:    providerRepo,
		appointmentRepo: appointmentRepo,
		expander:        NewExpander(logger),
		timeProvider:    &RealTimeProvider{},
		metrics:         metrics,
		logger:          logger,
		horizonDays:     horizonDays,
	}
}

// SetTimeProvider подменяет источник текущего времени
func (s *Service) SetTimeProvider(tp TimeProvider) {
	s.timeProvider = tp
}

// ListAvailableSlots возвращает доступные слоты провайдера в окне [from, to]
func (s *Service) ListAvailableSlots(ctx context.Context, providerID string, from, to time.Time, duration time.Duration) ([]domain.CandidateSlot, error) {
	slots, err := s.listSlots(ctx, providerID, from, to, duration, "")
	if err != nil {
		return nil, err
	}
	s.record(ScopeWindow, len(slots))
	return slots, nil
}

// DaySlots возвращает доступные слоты на календарный день [00:00, 23:59:59.999]
func (s *Service) DaySlots(ctx context.Context, providerID string, day time.Time, duration time.Duration) ([]domain.CandidateSlot, error) {
	return s.DaySlotsIgnoring(ctx, providerID, day, duration, "")
}

// DaySlotsIgnoring как DaySlots, но запись appointmentID не занимает слоты
// Используется при переносе, чтобы запись не конфликтовала сама с собой
func (s *Service) DaySlotsIgnoring(ctx context.Context, providerID string, day time.Time, duration time.Duration, appointmentID string) ([]domain.CandidateSlot, error) {
	slots, err := s.listSlots(ctx, providerID, domain.StartOfDay(day), domain.EndOfDay(day), duration, appointmentID)
	if err != nil {
		return nil, err
	}
	s.record(ScopeDay, len(slots))
	return slots, nil
}

// NextAvailable возвращает первые limit слотов на горизонте от текущего момента
func (s *Service) NextAvailable(ctx context.Context, providerID string, duration time.Duration, limit int) ([]domain.CandidateSlot, error) {
	now := s.timeProvider.Now()

	slots, err := s.listSlots(ctx, providerID, now, now.AddDate(0, 0, s.horizonDays), duration, "")
	if err != nil {
		return nil, err
	}

	if limit >= 0 && len(slots) > limit {
		slots = slots[:limit]
	}
	s.record(ScopeAlternatives, len(slots))
	return slots, nil
}

func (s *Service) listSlots(ctx context.Context, providerID string, from, to time.Time, duration time.Duration, excludeID string) ([]domain.CandidateSlot, error) {
	if err := validateWindow(providerID, from, to, duration); err != nil {
		s.logger.Warn("ListAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("ListAvailableSlots: provider id=%s not found", providerID)
			return nil, fmt.Errorf("%w: provider id=%s", domain.ErrNotFound, providerID)
		}
		s.logger.Error("ListAvailableSlots: failed to get provider id=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	// Шаг 1: собираем кандидатов по всем правилам в порядке правил
	candidates := make([]domain.CandidateSlot, 0)
	for _, rule := range provider.Availability {
		for _, date := range s.expander.Expand(rule, from, to) {
			blockStart, err := rule.StartTime.On(date)
			if err != nil {
				s.logger.Error("ListAvailableSlots: rule id=%s has invalid start time: %v", rule.ID, err)
				return nil, fmt.Errorf("%w: rule id=%s: %v", ErrInternal, rule.ID, err)
			}
			blockEnd, err := rule.EndTime.On(date)
			if err != nil {
				s.logger.Error("ListAvailableSlots: rule id=%s has invalid end time: %v", rule.ID, err)
				return nil, fmt.Errorf("%w: rule id=%s: %v", ErrInternal, rule.ID, err)
			}

			// Блок целиком в прошлом
			if blockEnd.Before(now) {
				continue
			}

			for _, slot := range SliceBlock(provider.ID, blockStart, blockEnd, duration) {
				if slot.Start.Before(now) {
					continue
				}
				candidates = append(candidates, slot)
			}
		}
	}

	// Шаг 2: исключаем слоты, занятые неотмененными записями
	windowStart := domain.StartOfDay(from)
	windowEnd := domain.EndOfDay(to)
	appointments, err := s.appointmentRepo.GetByProviderWithFilter(ctx, domain.AppointmentsFilter{
		ProviderID: provider.ID,
		From:       &windowStart,
		To:         &windowEnd,
		ExcludeID:  excludeID,
	})
	if err != nil {
		s.logger.Error("ListAvailableSlots: failed to get appointments for provider id=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	slots := FilterConflicts(candidates, appointments)

	// Шаг 3: стабильная сортировка по времени начала
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	s.logger.Info("ListAvailableSlots: provider id=%s, %d candidates, %d available, from=%s, to=%s",
		providerID, len(candidates), len(slots), from.Format(time.RFC3339), to.Format(time.RFC3339))

	return slots, nil
}

func (s *Service) record(scope string, count int) {
	if s.metrics != nil {
		s.metrics.RecordSlotsListed(scope, count)
	}
}

// validateWindow проверяет параметры запроса слотов
func validateWindow(providerID string, from, to time.Time, duration time.Duration) error {
	if providerID == "" {
		return fmt.Errorf("%w: providerId is required", domain.ErrInvalidRequest)
	}
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: from and to are required", domain.ErrInvalidRequest)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: to must not be before from", domain.ErrInvalidRequest)
	}
	if to.Sub(from) > domain.MaxWindowDays*24*time.Hour {
		return fmt.Errorf("%w: window must not exceed %d days", domain.ErrInvalidRequest, domain.MaxWindowDays)
	}
	return domain.ValidateSlotDuration(duration)
}
