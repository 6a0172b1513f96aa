package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.Called(method, route, status)
}

func newRouter(mw mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(mw)
	r.HandleFunc("/api/v1/appointments/{appointmentId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/providers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}).Methods(http.MethodGet)
	return r
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	metrics := new(mockMetrics)
	metrics.On("RecordHTTPRequest", http.MethodGet, "/api/v1/appointments/{appointmentId}", http.StatusNotFound).Once()
	metrics.On("RecordHTTPRequest", http.MethodGet, "/api/v1/providers", http.StatusOK).Once()

	router := newRouter(MetricsMiddleware(metrics))

	for _, path := range []string{"/api/v1/appointments/abc-123", "/api/v1/providers"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	metrics.AssertExpectations(t)
}

func TestLoggingMiddleware_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	router := newRouter(LoggingMiddleware(logger.NewWithWriter(&buf, "info")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/abc", nil))
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "status=404")

	buf.Reset()
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/providers", nil))
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), "GET /api/v1/providers")
}
