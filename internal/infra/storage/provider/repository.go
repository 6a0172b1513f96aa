package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Repository репозиторий для работы с провайдерами
type Repository struct {
	store CollectionStore
	mu    sync.Mutex
}

// NewRepository создает новый экземпляр репозитория провайдеров
func NewRepository(store CollectionStore) *Repository {
	return &Repository{store: store}
}

// Create сохраняет нового провайдера
func (r *Repository) Create(ctx context.Context, provider *domain.Provider) (*domain.Provider, error) {
	if provider == nil || provider.ID == "" {
		return nil, fmt.Errorf("%w: Create - id is required", ErrInvalidProvider)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx, "Create")
	if err != nil {
		return nil, err
	}

	for _, existing := range all {
		if existing.ID == provider.ID {
			return nil, fmt.Errorf("%w: Create - id=%s", ErrDuplicateID, provider.ID)
		}
	}

	stored := provider.Clone()
	all = append(all, stored)

	if err := r.save(ctx, "Create", all); err != nil {
		return nil, err
	}

	return stored.Clone(), nil
}

// GetByID получает провайдера по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	all, err := r.load(ctx, "GetByID")
	if err != nil {
		return nil, err
	}

	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, ErrProviderNotFound
}

// GetAll возвращает всех провайдеров, отсортированных по ID
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Provider, error) {
	all, err := r.load(ctx, "GetAll")
	if err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})

	return all, nil
}

// ReplaceAvailability заменяет расписание провайдера целиком
func (r *Repository) ReplaceAvailability(ctx context.Context, id string, rules []domain.AvailabilityRule) (*domain.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx, "ReplaceAvailability")
	if err != nil {
		return nil, err
	}

	var target *domain.Provider
	for _, p := range all {
		if p.ID == id {
			target = p
			break
		}
	}
	if target == nil {
		return nil, ErrProviderNotFound
	}

	target.Availability = (&domain.Provider{Availability: rules}).Clone().Availability

	if err := r.save(ctx, "ReplaceAvailability", all); err != nil {
		return nil, err
	}

	return target.Clone(), nil
}

func (r *Repository) load(ctx context.Context, op string) ([]*domain.Provider, error) {
	all, err := r.store.LoadProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - load providers: %v", ErrStorage, op, err)
	}
	return all, nil
}

func (r *Repository) save(ctx context.Context, op string, all []*domain.Provider) error {
	if err := r.store.SaveProviders(ctx, all); err != nil {
		return fmt.Errorf("%w: %s - save providers: %v", ErrStorage, op, err)
	}
	return nil
}
