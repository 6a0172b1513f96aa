package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ListRequest запрос на получение записей провайдера
type ListRequest struct {
	ProviderID       string
	From             *time.Time
	To               *time.Time
	IncludeCancelled bool
}

// CancelResult исход отмены одной записи при отмене дня
type CancelResult struct {
	AppointmentID string
	Appointment   *domain.Appointment // Отмененная запись, если успешно
	Err           error
}

// ToFilter конвертирует запрос в фильтр репозитория
func (r *ListRequest) ToFilter() domain.AppointmentsFilter {
	return domain.AppointmentsFilter{
		ProviderID:       r.ProviderID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
	}
}
