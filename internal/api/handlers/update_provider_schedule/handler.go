package update_provider_schedule

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/providers/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/{providerId}/schedule
// Расписание заменяется целиком, существующие записи не затрагиваются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	var req models.ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	provider, err := h.service.ReplaceSchedule(r.Context(), providerID, &req)
	if err != nil {
		if domain.ErrorCode(err) == domain.CodeInternal {
			h.logger.Error("PUT /providers/{id}/schedule - Failed to replace schedule: provider_id=%s, error=%v", providerID, err)
		} else {
			h.logger.Warn("PUT /providers/{id}/schedule - Schedule rejected: provider_id=%s, reason=%v", providerID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /providers/{id}/schedule - Schedule replaced: provider_id=%s, rules=%d",
		providerID, len(provider.Availability))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromProvider(provider))
}
