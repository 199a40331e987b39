package core

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records load outcomes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	loads       *prometheus.CounterVec
	rowsDropped prometheus.Counter
	records     prometheus.Gauge
	loadSeconds prometheus.Histogram
}

// NewMetrics creates the load metrics on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kosherdir",
			Name:      "loads_total",
			Help:      "Directory loads by kind (origin, upload) and outcome (ok, fetch_error, parse_error).",
		}, []string{"kind", "outcome"}),
		rowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kosherdir",
			Name:      "rows_dropped_total",
			Help:      "Rows discarded because the business name was empty.",
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kosherdir",
			Name:      "records",
			Help:      "Records in the current directory list.",
		}),
		loadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kosherdir",
			Name:      "load_duration_seconds",
			Help:      "Time spent reading and parsing a directory file.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.loads, m.rowsDropped, m.records, m.loadSeconds)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeLoad(kind string, stats LoadStats, err error) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(kind, loadOutcome(err)).Inc()
	if err != nil {
		m.records.Set(0)
		return
	}
	m.rowsDropped.Add(float64(stats.Dropped))
	m.records.Set(float64(stats.Kept))
	m.loadSeconds.Observe(stats.Duration.Seconds())
}

func loadOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	if MapLoadError(err).Code == parseFailed.Code {
		return "parse_error"
	}
	return "fetch_error"
}
