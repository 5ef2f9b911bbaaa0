package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "psy_booking"

// Metrics коллектор метрик сервиса.
// Все методы безопасны для nil-получателя, чтобы сервис работал с выключенными метриками.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	bookingsTotal        *prometheus.CounterVec
	bookingsRemoved      *prometheus.CounterVec
	compensationFailures *prometheus.CounterVec
	expiredHolds         prometheus.Counter
	kvOperationDuration  *prometheus.HistogramVec
	inconsistencies      *prometheus.GaugeVec
}

// New создает коллектор и регистрирует его в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает коллектор с собственным реестром (нужно в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "bookings",
			Name:        "attempts_total",
			Help:        "Booking attempts by source and outcome",
			ConstLabels: constLabels,
		}, []string{"source", "outcome"}),
		bookingsRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "bookings",
			Name:        "removed_total",
			Help:        "Bookings removed (cancelled) by source",
			ConstLabels: constLabels,
		}, []string{"source"}),
		compensationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "bookings",
			Name:        "compensation_failures_total",
			Help:        "Failed compensating actions that need manual reconciliation",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		expiredHolds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "bookings",
			Name:        "expired_holds_total",
			Help:        "Unpaid online holds released by the expiry worker",
			ConstLabels: constLabels,
		}),
		kvOperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "kv",
			Name:        "operation_duration_seconds",
			Help:        "Key-value store operation latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"backend", "operation", "status"}),
		inconsistencies: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "consistency",
			Name:        "issues",
			Help:        "Calendar/ledger disagreements found by the last consistency check",
			ConstLabels: constLabels,
		}, []string{"kind"}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.bookingsTotal,
		m.bookingsRemoved,
		m.compensationFailures,
		m.expiredHolds,
		m.kvOperationDuration,
		m.inconsistencies,
	)
	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveBooking outcome: created, conflict, rejected, failed
func (m *Metrics) ObserveBooking(source, outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) ObserveRemoval(source string) {
	if m == nil {
		return
	}
	m.bookingsRemoved.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveCompensationFailure(operation string) {
	if m == nil {
		return
	}
	m.compensationFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveExpiredHolds(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.expiredHolds.Add(float64(n))
}

func (m *Metrics) ObserveKVOperation(backend, operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.kvOperationDuration.WithLabelValues(backend, operation, status).Observe(duration.Seconds())
}

// SetInconsistencies выставляет gauge по каждому виду расхождений
func (m *Metrics) SetInconsistencies(counts map[string]int) {
	if m == nil {
		return
	}
	for kind, n := range counts {
		m.inconsistencies.WithLabelValues(kind).Set(float64(n))
	}
}
