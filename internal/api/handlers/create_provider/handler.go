package create_provider

import (
	"net/http"

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

// Handle POST /api/v1/providers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProviderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	provider, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if domain.ErrorCode(err) == domain.CodeInternal {
			h.logger.Error("POST /providers - Failed to create provider: %v", err)
		} else {
			h.logger.Warn("POST /providers - Provider rejected: %v", err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /providers - Provider created successfully: provider_id=%s, rules=%d",
		provider.ID, len(provider.Availability))
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromProvider(provider))
}
