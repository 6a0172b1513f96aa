package get_provider

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type ProviderService interface {
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
