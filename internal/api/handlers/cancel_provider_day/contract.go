package cancel_provider_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	CancelAllForProviderOnDate(ctx context.Context, providerID string, date time.Time, reason *string) ([]models.CancelResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
