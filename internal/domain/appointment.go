package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a booking against a provider's slot
type Appointment struct {
	ID          string            `json:"id"`
	ProviderID  string            `json:"providerId"`
	OwnerName   string            `json:"ownerName"`   // кто записывает
	SubjectName string            `json:"subjectName"` // кого записывают
	Reason      *string           `json:"reason,omitempty"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	Status      AppointmentStatus `json:"status"`
	Notes       *string           `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsActive returns true if the appointment still blocks its interval
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the status allows cancellation
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the status allows moving the appointment
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// Overlaps returns true if [from, to] intersects the appointment interval
func (a *Appointment) Overlaps(from, to time.Time) bool {
	return !a.Start.After(to) && !a.End.Before(from)
}

// AppendNote дописывает заметку через перевод строки, сохраняя прежние заметки
func (a *Appointment) AppendNote(note string) {
	if note == "" {
		return
	}
	if a.Notes == nil || *a.Notes == "" {
		a.Notes = &note
		return
	}
	joined := *a.Notes + "\n" + note
	a.Notes = &joined
}

// Clone returns a deep copy of the appointment
func (a *Appointment) Clone() *Appointment {
	c := *a
	if a.Reason != nil {
		r := *a.Reason
		c.Reason = &r
	}
	if a.Notes != nil {
		n := *a.Notes
		c.Notes = &n
	}
	return &c
}

// AppointmentsFilter фильтр для выборки записей провайдера
type AppointmentsFilter struct {
	ProviderID       string     // Обязательный параметр
	From             *time.Time // Начало периода (опционально)
	To               *time.Time // Конец периода (опционально)
	IncludeCancelled bool       // Включать ли отмененные записи
	ExcludeID        string     // Исключить запись с этим ID (используется при переносе)
}
