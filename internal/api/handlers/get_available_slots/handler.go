package get_available_slots

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type Handler struct {
	service         AvailabilityService
	defaultDuration time.Duration
	logger          Logger
}

func NewHandler(service AvailabilityService, defaultDuration time.Duration, logger Logger) *Handler {
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultSlotDurationMinutes * time.Minute
	}
	return &Handler{
		service:         service,
		defaultDuration: defaultDuration,
		logger:          logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-slots
// Query params: from, to (обязательные, RFC3339 или YYYY-MM-DD), durationMinutes (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	q, err := parseQuery(r.URL.Query(), h.defaultDuration)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid parameters: provider_id=%s, error=%v", providerID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	slots, err := h.service.ListAvailableSlots(r.Context(), providerID, q.From, q.To, q.Duration)
	if err != nil {
		if domain.ErrorCode(err) == domain.CodeInternal {
			h.logger.Error("GET /providers/{id}/available-slots - Failed to get slots: provider_id=%s, error=%v", providerID, err)
		} else {
			h.logger.Warn("GET /providers/{id}/available-slots - Slots not returned: provider_id=%s, reason=%v", providerID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /providers/{id}/available-slots - Slots retrieved successfully: provider_id=%s, slots_count=%d",
		providerID, len(slots))
	handlers.RespondJSON(w, http.StatusOK, FromSlots(providerID, q, slots))
}
