package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal    *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec

	AppointmentsCreated *prometheus.CounterVec
	BookingConflicts    *prometheus.CounterVec
	InviteDeliveries    *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном prometheus registry
func New(service string) *Metrics {
	return NewWithRegistry(service, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном registry
func NewWithRegistry(service string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: service,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_queries_total",
			Help:      "Total number of database queries",
		}, []string{"service", "operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Number of established connections",
		}, []string{"service"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_in_use_connections",
			Help:      "Number of connections currently in use",
		}, []string{"service"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_idle_connections",
			Help:      "Number of idle connections",
		}, []string{"service"}),
		AppointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_created_total",
			Help:      "Appointments committed by the booking transaction",
		}, []string{"service", "kind"}),
		BookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Bookings rejected because the window overlapped an existing appointment",
		}, []string{"service"}),
		InviteDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invite_deliveries_total",
			Help:      "Proposed meeting invite deliveries by result",
		}, []string{"service", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.AppointmentsCreated,
		m.BookingConflicts,
		m.InviteDeliveries,
	)

	return m
}

// Service возвращает имя сервиса, которым помечаются метрики
func (m *Metrics) Service() string {
	return m.service
}

// ObserveAppointmentsCreated учитывает созданные записи (по одной на ресурс группы)
func (m *Metrics) ObserveAppointmentsCreated(kind string, count int) {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(m.service, kind).Add(float64(count))
}

// ObserveBookingConflict учитывает отказ из-за пересечения
func (m *Metrics) ObserveBookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(m.service).Inc()
}

// ObserveInviteDelivery учитывает результат отправки приглашения
func (m *Metrics) ObserveInviteDelivery(delivered bool) {
	if m == nil {
		return
	}
	result := "delivered"
	if !delivered {
		result = "failed"
	}
	m.InviteDeliveries.WithLabelValues(m.service, result).Inc()
}
