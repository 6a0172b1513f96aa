package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest возвращается при отсутствующих или некорректных входных данных
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInThePast возвращается, когда операция относится к моменту в прошлом
	ErrInThePast = errors.New("requested time is in the past")

	// ErrSlotUnavailable возвращается, когда запрошенный слот не совпадает ни с одним доступным кандидатом
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrNotFound возвращается для неизвестного провайдера или записи
	ErrNotFound = errors.New("not found")

	// ErrAlreadyCancelled возвращается при повторной отмене записи
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")
)

// Коды ошибок в ответах API и метках метрик
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInThePast        = "IN_THE_PAST"
	CodeSlotUnavailable  = "SLOT_UNAVAILABLE"
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyCancelled = "ALREADY_CANCELLED"
	CodeInternal         = "INTERNAL"
)

// SlotUnavailableError отказ в записи с ближайшими свободными слотами
type SlotUnavailableError struct {
	Alternatives []CandidateSlot
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("%s: %d alternatives", ErrSlotUnavailable, len(e.Alternatives))
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotUnavailable
}

// ErrorCode возвращает код ошибки; всё, что не относится к таксономии, считается INTERNAL
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInThePast):
		return CodeInThePast
	case errors.Is(err, ErrSlotUnavailable):
		return CodeSlotUnavailable
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAlreadyCancelled):
		return CodeAlreadyCancelled
	default:
		return CodeInternal
	}
}
