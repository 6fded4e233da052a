package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик портала бронирования
// Все методы безопасны для nil-получателя: при выключенных метриках
// компоненты получают nil и вызовы превращаются в no-op
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BackendRequestsTotal   *prometheus.CounterVec
	BackendRequestDuration *prometheus.HistogramVec

	BookingSubmissions *prometheus.CounterVec
	SlotFetches        *prometheus.CounterVec
	AdminSessions      *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "portal_http_requests_total",
			Help:        "Total number of HTTP requests served by the portal",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "portal_http_request_duration_seconds",
			Help:        "Duration of HTTP requests served by the portal",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BackendRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "portal_backend_requests_total",
			Help:        "Total number of requests sent to the booking backend",
			ConstLabels: constLabels,
		}, []string{"code", "method"}),
		BackendRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "portal_backend_request_duration_seconds",
			Help:        "Duration of requests sent to the booking backend",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method"}),
		BookingSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "portal_booking_submissions_total",
			Help:        "Booking submissions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		SlotFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "portal_slot_fetches_total",
			Help:        "Availability fetches by resulting status",
			ConstLabels: constLabels,
		}, []string{"status"}),
		AdminSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "portal_admin_session_events_total",
			Help:        "Admin session transitions (login, logout, expired, rejected)",
			ConstLabels: constLabels,
		}, []string{"event"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BackendRequestsTotal,
		m.BackendRequestDuration,
		m.BookingSubmissions,
		m.SlotFetches,
		m.AdminSessions,
	)

	return m
}

// Handler возвращает HTTP handler для экспорта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// InstrumentRoundTripper оборачивает транспорт клиента бэкенда счетчиком и гистограммой
func (m *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if m == nil {
		return next
	}
	return promhttp.InstrumentRoundTripperCounter(m.BackendRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(m.BackendRequestDuration, next))
}

// ObserveHTTP фиксирует обработанный запрос портала
func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// ObserveSubmission фиксирует результат отправки бронирования
func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.BookingSubmissions.WithLabelValues(outcome).Inc()
}

// ObserveSlotFetch фиксирует статус загрузки слотов
func (m *Metrics) ObserveSlotFetch(status string) {
	if m == nil {
		return
	}
	m.SlotFetches.WithLabelValues(status).Inc()
}

// ObserveAdminSession фиксирует переход сессии администратора
func (m *Metrics) ObserveAdminSession(event string) {
	if m == nil {
		return
	}
	m.AdminSessions.WithLabelValues(event).Inc()
}
