package create_provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/providers/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req *models.CreateProviderRequest) (*domain.Provider, error) {
	args := m.Called(ctx, req)
	if p := args.Get(0); p != nil {
		return p.(*domain.Provider), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc *mockService, payload string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "debug"))
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/providers", strings.NewReader(payload)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateProviderRequest) bool {
		return req.Name == "Dr. Vet" && len(req.Availability) == 1 && req.Availability[0].Weekday == 1
	})).Return(&domain.Provider{
		ID:   "p1",
		Name: "Dr. Vet",
		Availability: []domain.AvailabilityRule{
			{ID: "r1", Weekday: 1, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("12:00")},
		},
	}, nil)

	rec := serve(svc, `{"name":"Dr. Vet","availability":[{"weekday":1,"startTime":"09:00","endTime":"12:00"}]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp handlers.ProviderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "p1", resp.ID)
	assert.Empty(t, resp.Specialties)
	require.Len(t, resp.Availability, 1)
	assert.Equal(t, "09:00", resp.Availability[0].StartTime)
}

func TestHandle_InvalidRule(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: rule 0: start must be before end", domain.ErrInvalidRequest))

	rec := serve(svc, `{"name":"Dr. Vet","availability":[{"weekday":1,"startTime":"12:00","endTime":"09:00"}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.CodeInvalidRequest)
}
