package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "penguin_chart"

// Metrics holds the Prometheus counters, histograms, and gauges for a chart run.
type Metrics struct {
	RowsRead     prometheus.Counter
	RowsDropped  *prometheus.CounterVec // labels: reason={missing_species,unknown_species,missing_numeric,invalid_numeric}
	Observations prometheus.Gauge

	ArtifactsRendered *prometheus.CounterVec // labels: renderer
	ArtifactsLoaded   *prometheus.CounterVec // labels: sink
	StageErrors       *prometheus.CounterVec // labels: stage={extract,transform,render,load}

	RunDuration prometheus.Histogram
	LastRunOK   prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers the pipeline metrics with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.RowsRead,
		m.RowsDropped,
		m.Observations,
		m.ArtifactsRendered,
		m.ArtifactsLoaded,
		m.StageErrors,
		m.RunDuration,
		m.LastRunOK,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Total CSV data rows read from the input.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "CSV rows excluded during cleaning, by reason.",
		}, []string{"reason"}),
		Observations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "observations",
			Help:      "Observations plotted by the last run.",
		}),
		ArtifactsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_rendered_total",
			Help:      "Artifacts produced, by renderer.",
		}, []string{"renderer"}),
		ArtifactsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_loaded_total",
			Help:      "Artifacts delivered, by sink.",
		}, []string{"sink"}),
		StageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Pipeline failures, by stage.",
		}, []string{"stage"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete extract-transform-render-load run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LastRunOK: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 when the last run completed, 0 when it failed.",
		}),
	}
}
