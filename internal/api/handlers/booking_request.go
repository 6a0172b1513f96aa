package handlers

import (
	"fmt"
	"time"

	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// BookingRequest тело запроса на запись (одиночную и в пакете)
type BookingRequest struct {
	ProviderID  string  `json:"providerId"`
	Start       string  `json:"start"` // RFC3339
	End         string  `json:"end"`   // RFC3339
	OwnerName   string  `json:"ownerName"`
	SubjectName string  `json:"subjectName"`
	Reason      *string `json:"reason,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &createBooking.Request{
		ProviderID:  r.ProviderID,
		Start:       start,
		End:         end,
		OwnerName:   r.OwnerName,
		SubjectName: r.SubjectName,
		Reason:      r.Reason,
		Notes:       r.Notes,
	}, nil
}
