package batch_create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

type BatchBookingUseCase interface {
	ExecuteBatch(ctx context.Context, reqs []*createBooking.Request) ([]createBooking.BatchResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
