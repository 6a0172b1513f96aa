package reschedule_booking

import "time"

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID string    // ID переносимой записи
	Start         time.Time // Новое начало
	End           time.Time // Новый конец
}
