package list_providers

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
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

// Handle GET /api/v1/providers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providers, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /providers - Failed to list providers: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	response := make([]*handlers.ProviderResponse, len(providers))
	for i, p := range providers {
		response[i] = handlers.FromProvider(p)
	}

	h.logger.Info("GET /providers - Providers retrieved successfully: count=%d", len(providers))
	handlers.RespondJSON(w, http.StatusOK, response)
}
