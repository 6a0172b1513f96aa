package appointment

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Repository репозиторий для работы с записями
//
// Хранилище умеет только читать и перезаписывать коллекцию целиком, поэтому каждая
// модификация выполняется как load-modify-save под мьютексом репозитория.
// Без него параллельные записи к разным провайдерам затирали бы друг друга.
type Repository struct {
	store CollectionStore
	mu    sync.Mutex
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(store CollectionStore) *Repository {
	return &Repository{store: store}
}

// Create сохраняет новую запись
// ID должен быть заполнен вызывающей стороной
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if appointment == nil || appointment.ID == "" || appointment.ProviderID == "" {
		return nil, fmt.Errorf("%w: Create - id and provider id are required", ErrInvalidAppointment)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx, "Create")
	if err != nil {
		return nil, err
	}

	for _, existing := range all {
		if existing.ID == appointment.ID {
			return nil, fmt.Errorf("%w: Create - id=%s", ErrDuplicateID, appointment.ID)
		}
	}

	stored := appointment.Clone()
	all = append(all, stored)

	if err := r.save(ctx, "Create", all); err != nil {
		return nil, err
	}

	return stored.Clone(), nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	all, err := r.load(ctx, "GetByID")
	if err != nil {
		return nil, err
	}

	for _, a := range all {
		if a.ID == id {
			return a, nil
		}
	}

	return nil, ErrAppointmentNotFound
}

// GetByProviderWithFilter получает записи провайдера с фильтрацией
// Период [From, To] задает пересечение с интервалом записи, границы включаются.
// Результат отсортирован по времени начала (ASC).
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	all, err := r.load(ctx, "GetByProviderWithFilter")
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Appointment, 0)
	for _, a := range all {
		if a.ProviderID != filter.ProviderID {
			continue
		}
		if filter.ExcludeID != "" && a.ID == filter.ExcludeID {
			continue
		}
		if !filter.IncludeCancelled && a.IsCancelled() {
			continue
		}
		if filter.From != nil && a.End.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.Start.After(*filter.To) {
			continue
		}
		result = append(result, a)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})

	return result, nil
}

// Update атомарно изменяет запись функцией mutate
// Если mutate вернула ошибку, ничего не сохраняется и ошибка возвращается как есть
func (r *Repository) Update(ctx context.Context, id string, mutate func(a *domain.Appointment) error) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx, "Update")
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, a := range all {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrAppointmentNotFound
	}

	updated := all[idx].Clone()
	if err := mutate(updated); err != nil {
		return nil, err
	}
	// ID и провайдер не меняются при обновлении
	updated.ID = all[idx].ID
	updated.ProviderID = all[idx].ProviderID
	all[idx] = updated

	if err := r.save(ctx, "Update", all); err != nil {
		return nil, err
	}

	return updated.Clone(), nil
}

// UpdateWhere изменяет все записи, подходящие под match, и возвращает их количество
// Коллекция сохраняется только если изменилась хотя бы одна запись
func (r *Repository) UpdateWhere(ctx context.Context, match func(a *domain.Appointment) bool, mutate func(a *domain.Appointment)) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load(ctx, "UpdateWhere")
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, a := range all {
		if match(a) {
			mutate(a)
			changed++
		}
	}

	if changed == 0 {
		return 0, nil
	}

	if err := r.save(ctx, "UpdateWhere", all); err != nil {
		return 0, err
	}

	return changed, nil
}

func (r *Repository) load(ctx context.Context, op string) ([]*domain.Appointment, error) {
	all, err := r.store.LoadAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - load appointments: %v", ErrStorage, op, err)
	}
	return all, nil
}

func (r *Repository) save(ctx context.Context, op string, all []*domain.Appointment) error {
	if err := r.store.SaveAppointments(ctx, all); err != nil {
		return fmt.Errorf("%w: %s - save appointments: %v", ErrStorage, op, err)
	}
	return nil
}
