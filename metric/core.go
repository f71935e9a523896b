package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the core platform metrics for the semantic graph service.
type Metrics struct {
	// Ontology load metrics
	OntologyLoads *prometheus.CounterVec
	TriplesLoaded prometheus.Counter
	TripleCount   prometheus.Gauge
	LoadDuration  prometheus.Histogram

	// Query metrics
	ViewQueries  *prometheus.CounterVec
	ScanDuration prometheus.Histogram

	// Gateway metrics
	HTTPRequests     *prometheus.CounterVec
	WebsocketClients prometheus.Gauge
	ErrorsTotal      *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all core metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		OntologyLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semgraph",
				Subsystem: "ontology",
				Name:      "loads_total",
				Help:      "Total number of ontology load attempts",
			},
			[]string{"status"},
		),

		TriplesLoaded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "semgraph",
				Subsystem: "ontology",
				Name:      "triples_loaded_total",
				Help:      "Total number of triples loaded into the store",
			},
		),

		TripleCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "semgraph",
				Subsystem: "store",
				Name:      "triple_count",
				Help:      "Current number of triples in the store",
			},
		),

		LoadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "semgraph",
				Subsystem: "ontology",
				Name:      "load_duration_seconds",
				Help:      "Ontology parse and load duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		ViewQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semgraph",
				Subsystem: "query",
				Name:      "views_total",
				Help:      "Total number of view queries by view type",
			},
			[]string{"view"},
		),

		ScanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "semgraph",
				Subsystem: "query",
				Name:      "scan_duration_seconds",
				Help:      "Store scan duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semgraph",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),

		WebsocketClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "semgraph",
				Subsystem: "ws",
				Name:      "clients",
				Help:      "Number of connected websocket clients",
			},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semgraph",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors by component and class",
			},
			[]string{"component", "class"},
		),
	}
}

// RecordLoad records an ontology load attempt and its outcome.
func (m *Metrics) RecordLoad(status string, triples int, elapsed time.Duration) {
	m.OntologyLoads.WithLabelValues(status).Inc()
	if triples > 0 {
		m.TriplesLoaded.Add(float64(triples))
	}
	m.LoadDuration.Observe(elapsed.Seconds())
}

// RecordViewQuery records a view query by view name.
func (m *Metrics) RecordViewQuery(view string) {
	m.ViewQueries.WithLabelValues(view).Inc()
}

// ObserveScanDuration records the duration of a store scan.
func (m *Metrics) ObserveScanDuration(elapsed time.Duration) {
	m.ScanDuration.Observe(elapsed.Seconds())
}

// SetTripleCount updates the store size gauge.
func (m *Metrics) SetTripleCount(n int) {
	m.TripleCount.Set(float64(n))
}

// RecordError records an error by component and classification.
func (m *Metrics) RecordError(component, class string) {
	m.ErrorsTotal.WithLabelValues(component, class).Inc()
}
