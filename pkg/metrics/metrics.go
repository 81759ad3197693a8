// Package metrics Prometheus-коллекторы сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	EventsHandledTotal   *prometheus.CounterVec
	OutboxDeliveredTotal *prometheus.CounterVec
	NotificationsTotal   *prometheus.CounterVec
	SlotCacheTotal       *prometheus.CounterVec
}

// New регистрирует коллекторы в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует коллекторы в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections in use",
			ConstLabels: constLabels,
		}, []string{}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),

		EventsHandledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "events_handled_total",
			Help:        "Domain events processed by handlers",
			ConstLabels: constLabels,
		}, []string{"event", "handler", "outcome"}),
		OutboxDeliveredTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "outbox_delivered_total",
			Help:        "Outbox events delivered by the relay",
			ConstLabels: constLabels,
		}, []string{"event", "outcome"}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notification attempts per channel",
			ConstLabels: constLabels,
		}, []string{"channel", "outcome"}),
		SlotCacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_cache_requests_total",
			Help:        "Available slots cache lookups",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.EventsHandledTotal,
		m.OutboxDeliveredTotal,
		m.NotificationsTotal,
		m.SlotCacheTotal,
	)

	return m
}

// IncEvent безопасен для nil-получателя (метрики выключены)
func (m *Metrics) IncEvent(event, handler, outcome string) {
	if m == nil {
		return
	}
	m.EventsHandledTotal.WithLabelValues(event, handler, outcome).Inc()
}

func (m *Metrics) IncOutbox(event, outcome string) {
	if m == nil {
		return
	}
	m.OutboxDeliveredTotal.WithLabelValues(event, outcome).Inc()
}

func (m *Metrics) IncNotification(channel, outcome string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(channel, outcome).Inc()
}

func (m *Metrics) IncSlotCache(result string) {
	if m == nil {
		return
	}
	m.SlotCacheTotal.WithLabelValues(result).Inc()
}
