package confirm_booking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	appointment, err := h.service.Confirm(r.Context(), appointmentID)
	if err != nil {
		if domain.ErrorCode(err) == domain.CodeInternal {
			h.logger.Error("PATCH /appointments/{id}/confirm - Failed to confirm: appointment_id=%s, error=%v", appointmentID, err)
		} else {
			h.logger.Warn("PATCH /appointments/{id}/confirm - Confirm rejected: appointment_id=%s, reason=%v", appointmentID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /appointments/{id}/confirm - Appointment confirmed: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, handlers.AppointmentResult{
		Success:     true,
		Appointment: handlers.FromAppointment(appointment),
	})
}
