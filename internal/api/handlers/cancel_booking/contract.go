package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type AppointmentService interface {
	Cancel(ctx context.Context, id string, reason *string) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
