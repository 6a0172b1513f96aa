package get_available_slots

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListAvailableSlots(ctx context.Context, providerID string, from, to time.Time, duration time.Duration) ([]domain.CandidateSlot, error) {
	args := m.Called(ctx, providerID, from, to, duration)
	if s := args.Get(0); s != nil {
		return s.([]domain.CandidateSlot), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc *mockService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/providers/{providerId}/available-slots",
		NewHandler(svc, 30*time.Minute, logger.NewWithWriter(io.Discard, "debug")).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_DefaultDuration(t *testing.T) {
	from := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 11, 8, 0, 0, 0, 0, time.UTC)
	slot := domain.CandidateSlot{ProviderID: "p1", Start: from.Add(9 * time.Hour), End: from.Add(9*time.Hour + 30*time.Minute)}

	svc := new(mockService)
	svc.On("ListAvailableSlots", mock.Anything, "p1", from, to, 30*time.Minute).Return([]domain.CandidateSlot{slot}, nil)

	rec := serve(svc, "/api/v1/providers/p1/available-slots?from=2026-11-02&to=2026-11-08")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.DurationMinutes)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2026-11-02T09:00:00Z", resp.Slots[0].Start)
	svc.AssertExpectations(t)
}

func TestHandle_ExplicitDurationAndRFC3339(t *testing.T) {
	from := time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC)
	to := time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC)

	svc := new(mockService)
	svc.On("ListAvailableSlots", mock.Anything, "p1", from, to, 45*time.Minute).Return([]domain.CandidateSlot{}, nil)

	rec := serve(svc, "/api/v1/providers/p1/available-slots?from=2026-11-02T08:00:00Z&to=2026-11-02T18:00:00Z&durationMinutes=45")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandle_BadParameters(t *testing.T) {
	svc := new(mockService)

	for _, target := range []string{
		"/api/v1/providers/p1/available-slots?from=2026-11-02",
		"/api/v1/providers/p1/available-slots?from=yesterday&to=2026-11-08",
		"/api/v1/providers/p1/available-slots?from=2026-11-02&to=2026-11-08&durationMinutes=0",
		"/api/v1/providers/p1/available-slots?from=2026-11-02&to=2026-11-08&durationMinutes=abc",
	} {
		rec := serve(svc, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	svc.AssertNotCalled(t, "ListAvailableSlots", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_UnknownProvider(t *testing.T) {
	svc := new(mockService)
	svc.On("ListAvailableSlots", mock.Anything, "ghost", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrNotFound)

	rec := serve(svc, "/api/v1/providers/ghost/available-slots?from=2026-11-02&to=2026-11-08")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
