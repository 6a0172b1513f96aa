package batch_create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// BatchBookingRequest HTTP request model
type BatchBookingRequest struct {
	Requests []handlers.BookingRequest `json:"requests"`
}

// BatchItemResponse исход одной заявки
type BatchItemResponse struct {
	Index        int                           `json:"index"`
	Success      bool                          `json:"success"`
	Appointment  *handlers.AppointmentResponse `json:"appointment,omitempty"`
	Error        *handlers.ErrorBody           `json:"error,omitempty"`
	Alternatives []handlers.SlotResponse       `json:"alternatives,omitempty"`
}

// BatchBookingResponse HTTP response model
type BatchBookingResponse struct {
	Results   []BatchItemResponse `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// ToUseCaseRequests конвертирует пакет; ошибка формата любой заявки отклоняет весь пакет
func (r *BatchBookingRequest) ToUseCaseRequests() ([]*createBooking.Request, error) {
	reqs := make([]*createBooking.Request, len(r.Requests))
	for i := range r.Requests {
		req, err := r.Requests[i].ToUseCaseRequest()
		if err != nil {
			return nil, fmt.Errorf("requests[%d]: %w", i, err)
		}
		reqs[i] = req
	}
	return reqs, nil
}

// FromUseCaseResults конвертирует результаты use case в HTTP response
func FromUseCaseResults(results []createBooking.BatchResult) *BatchBookingResponse {
	resp := &BatchBookingResponse{Results: make([]BatchItemResponse, len(results))}
	for i, res := range results {
		item := BatchItemResponse{Index: res.Index}
		if res.Err != nil {
			errResp := handlers.NewErrorResponse(res.Err)
			item.Error = &errResp.Error
			item.Alternatives = errResp.Alternatives
			resp.Failed++
		} else {
			item.Success = true
			item.Appointment = handlers.FromAppointment(res.Appointment)
			resp.Succeeded++
		}
		resp.Results[i] = item
	}
	return resp
}
