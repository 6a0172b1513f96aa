package update_provider_schedule

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/providers/models"
)

type ProviderService interface {
	ReplaceSchedule(ctx context.Context, providerID string, req *models.ReplaceScheduleRequest) (*domain.Provider, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
