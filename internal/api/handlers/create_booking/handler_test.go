package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*domain.Appointment, error) {
	args := m.Called(ctx, req)
	if a := args.Get(0); a != nil {
		return a.(*domain.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	slotStart = time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
	slotEnd   = slotStart.Add(30 * time.Minute)
)

const body = `{"providerId":"p1","start":"2026-11-02T09:00:00Z","end":"2026-11-02T09:30:00Z","ownerName":"Alice","subjectName":"Rex"}`

func serve(t *testing.T, uc *mockUseCase, payload string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "debug"))
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(payload)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.ProviderID == "p1" && req.Start.Equal(slotStart) && req.End.Equal(slotEnd) && req.OwnerName == "Alice"
	})).Return(&domain.Appointment{
		ID:         "a1",
		ProviderID: "p1",
		Start:      slotStart,
		End:        slotEnd,
		Status:     domain.StatusScheduled,
	}, nil)

	rec := serve(t, uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp handlers.AppointmentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "a1", resp.Appointment.ID)
	assert.Equal(t, "scheduled", resp.Appointment.Status)
	assert.Equal(t, "2026-11-02T09:00:00Z", resp.Appointment.Start)
	uc.AssertExpectations(t)
}

func TestHandle_SlotUnavailableCarriesAlternatives(t *testing.T) {
	uc := new(mockUseCase)
	alt := domain.CandidateSlot{ProviderID: "p1", Start: slotEnd, End: slotEnd.Add(30 * time.Minute)}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &domain.SlotUnavailableError{Alternatives: []domain.CandidateSlot{alt}})

	rec := serve(t, uc, body)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, domain.CodeSlotUnavailable, resp.Error.Code)
	require.Len(t, resp.Alternatives, 1)
	assert.Equal(t, "2026-11-02T09:30:00Z", resp.Alternatives[0].Start)
}

func TestHandle_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid", fmt.Errorf("%w: provider id is required", domain.ErrInvalidRequest), http.StatusBadRequest, domain.CodeInvalidRequest},
		{"past", domain.ErrInThePast, http.StatusUnprocessableEntity, domain.CodeInThePast},
		{"not found", domain.ErrNotFound, http.StatusNotFound, domain.CodeNotFound},
		{"internal", errors.New("storage exploded"), http.StatusInternalServerError, domain.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(t, uc, body)

			assert.Equal(t, tt.status, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotContains(t, resp.Error.Message, "storage exploded")
		})
	}
}

func TestHandle_BadInput(t *testing.T) {
	uc := new(mockUseCase)

	rec := serve(t, uc, `{"providerId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, `{"providerId":"p1","start":"tomorrow","end":"2026-11-02T09:30:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, `{"providerId":"p1","unknown":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
