package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req handlers.BookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if domain.ErrorCode(err) == domain.CodeInternal {
			h.logger.Error("POST /appointments - Failed to create appointment: provider_id=%s, error=%v", req.ProviderID, err)
		} else {
			h.logger.Warn("POST /appointments - Booking rejected: provider_id=%s, start=%s, reason=%v",
				req.ProviderID, req.Start, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, provider_id=%s",
		appointment.ID, appointment.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.AppointmentResult{
		Success:     true,
		Appointment: handlers.FromAppointment(appointment),
	})
}
