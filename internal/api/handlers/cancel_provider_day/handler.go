package cancel_provider_day

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/cancel-day
// Каждая активная запись дня отменяется отдельно, ответ содержит исход по каждой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	var req CancelDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/cancel-day - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := req.parseDate()
	if err != nil {
		h.logger.Warn("POST /providers/{id}/cancel-day - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	results, err := h.service.CancelAllForProviderOnDate(r.Context(), providerID, date, req.Reason)
	if err != nil {
		if domain.ErrorCode(err) == domain.CodeInternal {
			h.logger.Error("POST /providers/{id}/cancel-day - Failed to cancel day: provider_id=%s, date=%s, error=%v",
				providerID, req.Date, err)
		} else {
			h.logger.Warn("POST /providers/{id}/cancel-day - Cancel day rejected: provider_id=%s, reason=%v", providerID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /providers/{id}/cancel-day - Day processed: provider_id=%s, date=%s, appointments=%d",
		providerID, req.Date, len(results))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResults(providerID, date, results))
}
