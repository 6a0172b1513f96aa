package get_provider_bookings

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, req *models.ListRequest) ([]*domain.Appointment, error) {
	args := m.Called(ctx, req)
	if a := args.Get(0); a != nil {
		return a.([]*domain.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest("p1", url.Values{
		"from":             {"2026-11-02"},
		"to":               {"2026-11-03T12:00:00Z"},
		"includeCancelled": {"true"},
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", req.ProviderID)
	assert.True(t, req.From.Equal(time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, req.To.Equal(time.Date(2026, 11, 3, 12, 0, 0, 0, time.UTC)))
	assert.True(t, req.IncludeCancelled)

	req, err = ToServiceRequest("p1", url.Values{})
	require.NoError(t, err)
	assert.Nil(t, req.From)
	assert.Nil(t, req.To)
	assert.False(t, req.IncludeCancelled)

	_, err = ToServiceRequest("p1", url.Values{"includeCancelled": {"maybe"}})
	assert.Error(t, err)
}

func TestHandle(t *testing.T) {
	start := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
	svc := new(mockService)
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListRequest) bool {
		return req.ProviderID == "p1" && !req.IncludeCancelled
	})).Return([]*domain.Appointment{
		{ID: "a1", ProviderID: "p1", Start: start, End: start.Add(30 * time.Minute), Status: domain.StatusScheduled},
	}, nil)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/providers/{providerId}/appointments",
		NewHandler(svc, logger.NewWithWriter(io.Discard, "debug")).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/providers/p1/appointments", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"a1"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/providers/p1/appointments?from=bad", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
