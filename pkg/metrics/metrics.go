package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	BookingOutcomesTotal   *prometheus.CounterVec
	SlotsListed            *prometheus.HistogramVec
	AppointmentsCompleted  *prometheus.CounterVec
	StorageOperationsTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BookingOutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_outcomes_total",
			Help:        "Booking, reschedule and cancel outcomes by result code",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
		SlotsListed: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "available_slots_listed",
			Help:        "Number of candidate slots returned per availability query",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"scope"}),
		AppointmentsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_completed_total",
			Help:        "Appointments moved to completed by the completion sweep",
			ConstLabels: constLabels,
		}, []string{}),
		StorageOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "storage_operations_total",
			Help:        "Collection store load/save operations",
			ConstLabels: constLabels,
		}, []string{"collection", "operation", "status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingOutcomesTotal,
		m.SlotsListed,
		m.AppointmentsCompleted,
		m.StorageOperationsTotal,
	)

	return m
}

// RecordHTTPRequest фиксирует обработанный HTTP запрос
// route должен быть шаблоном маршрута, а не сырым путем
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordBookingOutcome фиксирует результат операции бронирования
func (m *Metrics) RecordBookingOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordSlotsListed фиксирует размер выдачи доступных слотов
func (m *Metrics) RecordSlotsListed(scope string, count int) {
	if m == nil {
		return
	}
	m.SlotsListed.WithLabelValues(scope).Observe(float64(count))
}

// RecordAppointmentsCompleted фиксирует количество завершенных записей
func (m *Metrics) RecordAppointmentsCompleted(count int) {
	if m == nil || count == 0 {
		return
	}
	m.AppointmentsCompleted.WithLabelValues().Add(float64(count))
}

// RecordStorageOperation фиксирует обращение к хранилищу коллекций
func (m *Metrics) RecordStorageOperation(collection, operation string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.StorageOperationsTotal.WithLabelValues(collection, operation, status).Inc()
}
