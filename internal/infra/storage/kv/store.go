package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Store хранилище двух коллекций: провайдеров и записей
// Каждая операция читает или перезаписывает коллекцию целиком
type Store struct {
	backend Backend
	metrics Metrics
}

// NewStore создает хранилище поверх backend
// metrics может быть nil
func NewStore(backend Backend, metrics Metrics) *Store {
	return &Store{backend: backend, metrics: metrics}
}

// LoadProviders читает всех провайдеров
func (s *Store) LoadProviders(ctx context.Context) ([]*domain.Provider, error) {
	providers := make([]*domain.Provider, 0)
	if err := s.load(ctx, CollectionProviders, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// SaveProviders перезаписывает коллекцию провайдеров
func (s *Store) SaveProviders(ctx context.Context, providers []*domain.Provider) error {
	if providers == nil {
		providers = []*domain.Provider{}
	}
	return s.save(ctx, CollectionProviders, providers)
}

// LoadAppointments читает все записи
func (s *Store) LoadAppointments(ctx context.Context) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	if err := s.load(ctx, CollectionAppointments, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// SaveAppointments перезаписывает коллекцию записей
func (s *Store) SaveAppointments(ctx context.Context, appointments []*domain.Appointment) error {
	if appointments == nil {
		appointments = []*domain.Appointment{}
	}
	return s.save(ctx, CollectionAppointments, appointments)
}

func (s *Store) load(ctx context.Context, collection string, dst interface{}) error {
	payload, err := s.backend.Load(ctx, collection)
	s.record(collection, "load", err)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoad, collection, err)
	}

	// Коллекция еще ни разу не сохранялась
	if len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, collection, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, collection string, src interface{}) error {
	payload, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, collection, err)
	}

	err = s.backend.Save(ctx, collection, payload)
	s.record(collection, "save", err)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSave, collection, err)
	}
	return nil
}

func (s *Store) record(collection, operation string, err error) {
	if s.metrics != nil {
		s.metrics.RecordStorageOperation(collection, operation, err)
	}
}
