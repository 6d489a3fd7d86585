package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "detailing"

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrorsTotal *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	ReservationsCreatedTotal *prometheus.CounterVec
	SlotConflictsTotal       *prometheus.CounterVec
	QuotesTotal              *prometheus.CounterVec
	LeadsCreatedTotal        *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_errors_total",
			Help:        "Database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections:  newPoolGauge(constLabels, "open_connections", "Open connections in the pool"),
		DBInUseConnections: newPoolGauge(constLabels, "in_use_connections", "Connections currently in use"),
		DBIdleConnections:  newPoolGauge(constLabels, "idle_connections", "Idle connections"),
		DBWaitCount:        newPoolGauge(constLabels, "wait_count", "Total number of connections waited for"),

		ReservationsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking",
			Name:        "reservations_created_total",
			Help:        "Reservations created through the public flow",
			ConstLabels: constLabels,
		}, []string{"status"}),

		SlotConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking",
			Name:        "slot_conflicts_total",
			Help:        "Reservation attempts rejected because the slot was taken or invalid",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		QuotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking",
			Name:        "quotes_total",
			Help:        "Price quotes computed",
			ConstLabels: constLabels,
		}, []string{"result"}),

		LeadsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "booking",
			Name:        "leads_created_total",
			Help:        "Leads recorded",
			ConstLabels: constLabels,
		}, []string{"source"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrorsTotal,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.ReservationsCreatedTotal,
		m.SlotConflictsTotal,
		m.QuotesTotal,
		m.LeadsCreatedTotal,
	)

	return m
}

func newPoolGauge(constLabels prometheus.Labels, name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   "db_pool",
		Name:        name,
		Help:        help,
		ConstLabels: constLabels,
	}, []string{"database"})
}

// ObserveHTTP фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDB фиксирует выполнение запроса к БД
func (m *Metrics) ObserveDB(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// ReservationCreated увеличивает счетчик созданных бронирований
func (m *Metrics) ReservationCreated(status string) {
	if m == nil {
		return
	}
	m.ReservationsCreatedTotal.WithLabelValues(status).Inc()
}

// SlotConflict увеличивает счетчик отказов по слоту
func (m *Metrics) SlotConflict(reason string) {
	if m == nil {
		return
	}
	m.SlotConflictsTotal.WithLabelValues(reason).Inc()
}

// QuoteServed увеличивает счетчик рассчитанных смет
func (m *Metrics) QuoteServed(result string) {
	if m == nil {
		return
	}
	m.QuotesTotal.WithLabelValues(result).Inc()
}

// LeadCreated увеличивает счетчик лидов
func (m *Metrics) LeadCreated(source string) {
	if m == nil {
		return
	}
	m.LeadsCreatedTotal.WithLabelValues(source).Inc()
}
