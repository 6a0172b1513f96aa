package appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CollectionStore хранилище коллекции записей (читается и перезаписывается целиком)
type CollectionStore interface {
	LoadAppointments(ctx context.Context) ([]*domain.Appointment, error)
	SaveAppointments(ctx context.Context, appointments []*domain.Appointment) error
}
