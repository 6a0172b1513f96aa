package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// AvailabilityService интерфейс сервиса доступных слотов
type AvailabilityService interface {
	DaySlots(ctx context.Context, providerID string, day time.Time, duration time.Duration) ([]domain.CandidateSlot, error)
	NextAvailable(ctx context.Context, providerID string, duration time.Duration, limit int) ([]domain.CandidateSlot, error)
}

// LockManager интерфейс для сериализации записи к одному провайдеру
type LockManager interface {
	DoSerializable(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для метрик исходов записи
type Metrics interface {
	RecordBookingOutcome(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
