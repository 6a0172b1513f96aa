package batch_create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени в пакете, ожидается RFC3339"
)

type Handler struct {
	useCase BatchBookingUseCase
	logger  Logger
}

func NewHandler(useCase BatchBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/batch
// Заявки обрабатываются по порядку, отказ одной не отменяет остальные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BatchBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/batch - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReqs, err := req.ToUseCaseRequests()
	if err != nil {
		h.logger.Warn("POST /appointments/batch - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	results, err := h.useCase.ExecuteBatch(r.Context(), useCaseReqs)
	if err != nil {
		h.logger.Warn("POST /appointments/batch - Batch rejected: size=%d, error=%v", len(useCaseReqs), err)
		handlers.RespondDomainError(w, err)
		return
	}

	response := FromUseCaseResults(results)

	h.logger.Info("POST /appointments/batch - Batch processed: size=%d, succeeded=%d, failed=%d",
		len(results), response.Succeeded, response.Failed)
	handlers.RespondJSON(w, http.StatusOK, response)
}
