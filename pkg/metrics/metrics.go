package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBOpenConns     *prometheus.GaugeVec
	DBInUseConns    *prometheus.GaugeVec
	DBIdleConns     *prometheus.GaugeVec

	BookingOperations *prometheus.CounterVec
	BookingAmount     *prometheus.HistogramVec
}

// New регистрирует метрики в глобальном регистре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном регистре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	namespace := sanitize(serviceName)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Number of open database connections",
		}, []string{"service"}),

		DBInUseConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_in_use_connections",
			Help:      "Number of database connections in use",
		}, []string{"service"}),

		DBIdleConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_idle_connections",
			Help:      "Number of idle database connections",
		}, []string{"service"}),

		BookingOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_operations_total",
			Help:      "Booking operations by type (created, updated, quoted)",
		}, []string{"service", "operation"}),

		BookingAmount: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_total_amount",
			Help:      "Booking total amount in major currency units",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 10),
		}, []string{"service", "operation"}),
	}
}

// BookingRecorder фиксирует бизнес-метрики бронирований для конкретного сервиса
type BookingRecorder struct {
	m       *Metrics
	service string
}

// Bookings возвращает recorder бизнес-метрик. Безопасен для nil *Metrics.
func (m *Metrics) Bookings(service string) *BookingRecorder {
	return &BookingRecorder{m: m, service: service}
}

// RecordBooking учитывает операцию и сумму бронирования (сумма в минорных единицах)
func (r *BookingRecorder) RecordBooking(operation string, totalMinor int64) {
	if r == nil || r.m == nil {
		return
	}
	r.m.BookingOperations.WithLabelValues(r.service, operation).Inc()
	r.m.BookingAmount.WithLabelValues(r.service, operation).Observe(float64(totalMinor) / 100)
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
