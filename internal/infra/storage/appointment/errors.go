package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrDuplicateID возвращается при создании записи с уже существующим ID
	ErrDuplicateID = errors.New("appointment.repository: duplicate appointment id")

	// ErrInvalidAppointment возвращается при попытке сохранить запись без обязательных полей
	ErrInvalidAppointment = errors.New("appointment.repository: invalid appointment")

	// ErrStorage возвращается при ошибках хранилища коллекций
	ErrStorage = errors.New("appointment.repository: storage error")
)
