package providers

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) (*domain.Provider, error)
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
	GetAll(ctx context.Context) ([]*domain.Provider, error)
	ReplaceAvailability(ctx context.Context, id string, rules []domain.AvailabilityRule) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
