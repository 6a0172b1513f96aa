package provider

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CollectionStore хранилище коллекции провайдеров (читается и перезаписывается целиком)
type CollectionStore interface {
	LoadProviders(ctx context.Context) ([]*domain.Provider, error)
	SaveProviders(ctx context.Context, providers []*domain.Provider) error
}
