package handlers

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SlotResponse свободный слот
type SlotResponse struct {
	ProviderID string `json:"providerId"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

// AppointmentResponse запись в ответе API
type AppointmentResponse struct {
	ID          string  `json:"id"`
	ProviderID  string  `json:"providerId"`
	OwnerName   string  `json:"ownerName"`
	SubjectName string  `json:"subjectName"`
	Reason      *string `json:"reason,omitempty"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// AppointmentResult результат записи, переноса или отмены
type AppointmentResult struct {
	Success     bool                 `json:"success"`
	Appointment *AppointmentResponse `json:"appointment"`
}

// AvailabilityRuleResponse правило доступности в ответе API
type AvailabilityRuleResponse struct {
	ID         string  `json:"id"`
	Weekday    int     `json:"weekday"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Recurrence *string `json:"recurrence,omitempty"`
}

// ProviderResponse провайдер в ответе API
type ProviderResponse struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Specialties  []string                   `json:"specialties"`
	Availability []AvailabilityRuleResponse `json:"availability"`
	Rating       float64                    `json:"rating"`
	Location     string                     `json:"location"`
}

func FromSlots(slots []domain.CandidateSlot) []SlotResponse {
	result := make([]SlotResponse, len(slots))
	for i, s := range slots {
		result[i] = SlotResponse{
			ProviderID: s.ProviderID,
			Start:      s.Start.Format(time.RFC3339),
			End:        s.End.Format(time.RFC3339),
		}
	}
	return result
}

func FromAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          a.ID,
		ProviderID:  a.ProviderID,
		OwnerName:   a.OwnerName,
		SubjectName: a.SubjectName,
		Reason:      a.Reason,
		Start:       a.Start.Format(time.RFC3339),
		End:         a.End.Format(time.RFC3339),
		Status:      string(a.Status),
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
}

func FromAppointments(appointments []*domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, len(appointments))
	for i, a := range appointments {
		result[i] = FromAppointment(a)
	}
	return result
}

func FromProvider(p *domain.Provider) *ProviderResponse {
	rules := make([]AvailabilityRuleResponse, len(p.Availability))
	for i, r := range p.Availability {
		rules[i] = AvailabilityRuleResponse{
			ID:         r.ID,
			Weekday:    int(r.Weekday),
			StartTime:  r.StartTime.String(),
			EndTime:    r.EndTime.String(),
			Recurrence: r.Recurrence,
		}
	}

	specialties := p.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	return &ProviderResponse{
		ID:           p.ID,
		Name:         p.Name,
		Specialties:  specialties,
		Availability: rules,
		Rating:       p.Rating,
		Location:     p.Location,
	}
}
