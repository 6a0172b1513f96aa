package completion

import "context"

// AppointmentService интерфейс сервиса записей
type AppointmentService interface {
	CompleteElapsed(ctx context.Context) (int, error)
}

// Metrics интерфейс для метрик завершения записей
type Metrics interface {
	RecordAppointmentsCompleted(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
