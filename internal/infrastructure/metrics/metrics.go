// Package metrics contadores Prometheus del servicio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores. Cada instancia usa su propio registry para que
// los tests puedan crear varias sin colisiones.
type Metrics struct {
	registry *prometheus.Registry

	CodesComputed   prometheus.Counter
	ComputeFailures *prometheus.CounterVec
	Lookups         *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New crea y registra los colectores.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		CodesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codicefiscale_codes_computed_total",
			Help: "Total de codici fiscali calculados correctamente",
		}),
		ComputeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "codicefiscale_compute_failures_total",
			Help: "Cálculos rechazados por tipo de error",
		}, []string{"reason"}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "codicefiscale_municipality_lookups_total",
			Help: "Consultas de código catastral por resultado (found, not_found)",
		}, []string{"result"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "codicefiscale_http_request_duration_ms",
			Help:    "Duración de las peticiones HTTP en milisegundos",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.CodesComputed, m.ComputeFailures, m.Lookups, m.RequestDuration)
	return m
}

// IncComputed suma un código calculado.
func (m *Metrics) IncComputed() {
	if m != nil {
		m.CodesComputed.Inc()
	}
}

// IncFailure suma un cálculo rechazado con el motivo indicado.
func (m *Metrics) IncFailure(reason string) {
	if m != nil {
		m.ComputeFailures.WithLabelValues(reason).Inc()
	}
}

// IncLookup suma una consulta de municipio.
func (m *Metrics) IncLookup(found bool) {
	if m == nil {
		return
	}
	result := "not_found"
	if found {
		result = "found"
	}
	m.Lookups.WithLabelValues(result).Inc()
}

// ObserveRequest registra la duración de una petición.
func (m *Metrics) ObserveRequest(method, route, status string, ms float64) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route, status).Observe(ms)
	}
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
