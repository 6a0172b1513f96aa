package cancel_provider_day

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// CancelDayRequest HTTP request model
type CancelDayRequest struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Reason *string `json:"reason,omitempty"`
}

// CancelItemResponse исход отмены одной записи
type CancelItemResponse struct {
	AppointmentID string                        `json:"appointmentId"`
	Success       bool                          `json:"success"`
	Appointment   *handlers.AppointmentResponse `json:"appointment,omitempty"`
	Error         *handlers.ErrorBody           `json:"error,omitempty"`
}

// CancelDayResponse HTTP response model
type CancelDayResponse struct {
	ProviderID string               `json:"providerId"`
	Date       string               `json:"date"`
	Results    []CancelItemResponse `json:"results"`
}

func (r *CancelDayRequest) parseDate() (time.Time, error) {
	return time.Parse(domain.DateFormat, r.Date)
}

// FromServiceResults конвертирует результаты сервиса в HTTP response
func FromServiceResults(providerID string, date time.Time, results []models.CancelResult) *CancelDayResponse {
	items := make([]CancelItemResponse, len(results))
	for i, res := range results {
		item := CancelItemResponse{AppointmentID: res.AppointmentID}
		if res.Err != nil {
			errResp := handlers.NewErrorResponse(res.Err)
			item.Error = &errResp.Error
		} else {
			item.Success = true
			item.Appointment = handlers.FromAppointment(res.Appointment)
		}
		items[i] = item
	}

	return &CancelDayResponse{
		ProviderID: providerID,
		Date:       date.Format(domain.DateFormat),
		Results:    items,
	}
}
