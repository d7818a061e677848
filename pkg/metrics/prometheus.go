package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics métricas del libro de movimientos y del servidor HTTP.
// Cada instancia tiene su propio registry para que los tests no choquen con el global.
type Metrics struct {
	registry *prometheus.Registry

	TransitionsApplied  *prometheus.CounterVec
	ContainersMoved     *prometheus.CounterVec
	TransitionsRejected *prometheus.CounterVec
	TransitionDuration  prometheus.Histogram
	DateCorrections     *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

// New crea y registra las métricas bajo namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		TransitionsApplied: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bulk_transitions_total",
			Help:      "Actualizaciones masivas aplicadas por estado origen y destino",
		}, []string{"from", "to"}),
		ContainersMoved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movement_records_appended_total",
			Help:      "Filas agregadas al libro por estado destino",
		}, []string{"to"}),
		TransitionsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bulk_transitions_rejected_total",
			Help:      "Actualizaciones masivas rechazadas por motivo",
		}, []string{"to", "reason"}),
		TransitionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bulk_transition_duration_seconds",
			Help:      "Duración de una actualización masiva aplicada",
			Buckets:   prometheus.DefBuckets,
		}),
		DateCorrections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "date_corrections_total",
			Help:      "Correcciones de fecha, separando las que cambiaron el estado actual",
		}, []string{"status_changed"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests HTTP por ruta, método y código",
		}, []string{"route", "method", "code"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia HTTP por ruta",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// TransitionApplied registra un lote escrito.
func (m *Metrics) TransitionApplied(from, to string, containers int, elapsed time.Duration) {
	m.TransitionsApplied.WithLabelValues(from, to).Inc()
	m.ContainersMoved.WithLabelValues(to).Add(float64(containers))
	m.TransitionDuration.Observe(elapsed.Seconds())
}

// TransitionRejected registra un lote rechazado.
func (m *Metrics) TransitionRejected(to, reason string) {
	m.TransitionsRejected.WithLabelValues(to, reason).Inc()
}

// DateCorrected registra una corrección de fecha.
func (m *Metrics) DateCorrected(statusChanged bool) {
	label := "false"
	if statusChanged {
		label = "true"
	}
	m.DateCorrections.WithLabelValues(label).Inc()
}

// ObserveHTTP registra un request ya respondido.
func (m *Metrics) ObserveHTTP(route, method string, code int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry para tests y para registrar colectores adicionales.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
