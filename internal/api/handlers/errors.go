package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var messages = map[string]string{
	domain.CodeInvalidRequest:   "некорректный запрос",
	domain.CodeInThePast:        "запрошенное время уже прошло",
	domain.CodeSlotUnavailable:  "выбранный временной слот недоступен",
	domain.CodeNotFound:         "объект не найден",
	domain.CodeAlreadyCancelled: "запись уже отменена",
	domain.CodeInternal:         msgInternalError,
}

// StatusCode возвращает HTTP статус для кода ошибки
func StatusCode(code string) int {
	switch code {
	case domain.CodeInvalidRequest:
		return http.StatusBadRequest
	case domain.CodeInThePast:
		return http.StatusUnprocessableEntity
	case domain.CodeSlotUnavailable, domain.CodeAlreadyCancelled:
		return http.StatusConflict
	case domain.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse формирует тело ответа для ошибки доменной таксономии
// Для INTERNAL текст исходной ошибки наружу не отдается
func NewErrorResponse(err error) ErrorResponse {
	code := domain.ErrorCode(err)
	message := messages[code]
	if code != domain.CodeInternal {
		message = message + ": " + err.Error()
	}

	resp := ErrorResponse{
		Success: false,
		Error:   ErrorBody{Code: code, Message: message},
	}

	var unavailable *domain.SlotUnavailableError
	if errors.As(err, &unavailable) {
		resp.Alternatives = FromSlots(unavailable.Alternatives)
	}

	return resp
}

// RespondDomainError пишет ошибку сервиса или use case с нужным статусом
func RespondDomainError(w http.ResponseWriter, err error) {
	resp := NewErrorResponse(err)
	RespondJSON(w, StatusCode(resp.Error.Code), resp)
}
