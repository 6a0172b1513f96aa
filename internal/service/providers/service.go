package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	providerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-SchedulingService/internal/service/providers/models"
)

const maxNameLength = 200

// Service сервис для настройки провайдеров и их расписаний
type Service struct {
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса провайдеров
func NewService(providerRepo ProviderRepository, logger Logger) *Service {
	return &Service{
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// Create создает провайдера вместе с расписанием
func (s *Service) Create(ctx context.Context, req *models.CreateProviderRequest) (*domain.Provider, error) {
	s.logger.Info("Create: creating provider name=%q with %d rules", req.Name, len(req.Availability))

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxNameLength {
		s.logger.Warn("Create: invalid provider name")
		return nil, fmt.Errorf("%w: name is required and must not exceed %d characters", domain.ErrInvalidRequest, maxNameLength)
	}

	rules, err := buildRules(req.Availability)
	if err != nil {
		s.logger.Warn("Create: invalid availability: %v", err)
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	specialties := req.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	created, err := s.providerRepo.Create(ctx, &domain.Provider{
		ID:           id,
		Name:         name,
		Specialties:  specialties,
		Availability: rules,
		Rating:       req.Rating,
		Location:     req.Location,
	})
	if err != nil {
		if errors.Is(err, providerRepo.ErrDuplicateID) {
			s.logger.Warn("Create: provider id=%s already exists", id)
			return nil, fmt.Errorf("%w: %w: id=%s", domain.ErrInvalidRequest, ErrProviderAlreadyExists, id)
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created provider id=%s", created.ID)
	return created, nil
}

// GetByID получает провайдера по ID
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	s.logger.Info("GetByID: fetching provider id=%s", id)

	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repositoryError("GetByID", id, err)
	}
	return provider, nil
}

// List возвращает всех провайдеров
func (s *Service) List(ctx context.Context) ([]*domain.Provider, error) {
	providers, err := s.providerRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d providers", len(providers))
	return providers, nil
}

// ReplaceSchedule заменяет расписание провайдера целиком
func (s *Service) ReplaceSchedule(ctx context.Context, providerID string, req *models.ReplaceScheduleRequest) (*domain.Provider, error) {
	s.logger.Info("ReplaceSchedule: provider id=%s, %d rules", providerID, len(req.Availability))

	rules, err := buildRules(req.Availability)
	if err != nil {
		s.logger.Warn("ReplaceSchedule: invalid availability for provider id=%s: %v", providerID, err)
		return nil, err
	}

	updated, err := s.providerRepo.ReplaceAvailability(ctx, providerID, rules)
	if err != nil {
		return nil, s.repositoryError("ReplaceSchedule", providerID, err)
	}

	s.logger.Info("ReplaceSchedule: successfully replaced schedule for provider id=%s", providerID)
	return updated, nil
}

func (s *Service) repositoryError(op, id string, err error) error {
	if errors.Is(err, providerRepo.ErrProviderNotFound) {
		s.logger.Warn("%s: provider id=%s not found", op, id)
		return fmt.Errorf("%w: provider id=%s", domain.ErrNotFound, id)
	}
	s.logger.Error("%s: repository error for provider id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// buildRules проверяет правила и приводит описания повторения к каноническому виду
func buildRules(inputs []models.AvailabilityRuleInput) ([]domain.AvailabilityRule, error) {
	rules := make([]domain.AvailabilityRule, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))

	for i, input := range inputs {
		rule := input.ToDomainRule()
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rule #%d: %w", i, err)
		}

		rec, _ := rule.ParsedRecurrence()
		if rec != nil {
			canonical := rec.String()
			rule.Recurrence = &canonical
		} else {
			rule.Recurrence = nil
		}

		if rule.ID == "" {
			rule.ID = uuid.NewString()
		}
		if seen[rule.ID] {
			return nil, fmt.Errorf("%w: rule #%d: duplicate rule id %s", domain.ErrInvalidRequest, i, rule.ID)
		}
		seen[rule.ID] = true

		rules = append(rules, rule)
	}

	return rules, nil
}
