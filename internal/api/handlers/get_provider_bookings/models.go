package get_provider_bookings

import (
	"fmt"
	"net/url"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(providerID string, values url.Values) (*models.ListRequest, error) {
	from, err := handlers.ParseOptionalTime(values.Get("from"))
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := handlers.ParseOptionalTime(values.Get("to"))
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	includeCancelled, err := handlers.ParseOptionalBool(values.Get("includeCancelled"))
	if err != nil {
		return nil, fmt.Errorf("includeCancelled: %w", err)
	}

	return &models.ListRequest{
		ProviderID:       providerID,
		From:             from,
		To:               to,
		IncludeCancelled: includeCancelled,
	}, nil
}
