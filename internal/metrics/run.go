package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every exported metric.
const Namespace = "threadsum"

// RunMetrics records the statistics of one run into a private Prometheus
// registry. It is safe for concurrent use by the worker goroutines.
type RunMetrics struct {
	registry         *prometheus.Registry
	workersCompleted prometheus.Counter
	samplesDrawn     prometheus.Counter
	workerDuration   prometheus.Histogram
	workerTotal      *prometheus.GaugeVec
	runDuration      prometheus.Gauge
	bestTotal        prometheus.Gauge
}

// NewRunMetrics creates and registers the run collectors.
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		workersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workers_completed_total",
			Help:      "Number of workers that finished accumulating.",
		}),
		samplesDrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "samples_drawn_total",
			Help:      "Number of random samples drawn across all workers.",
		}),
		workerDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "worker_duration_seconds",
			Help:      "Wall time spent by each worker.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		workerTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "worker_total",
			Help:      "Accumulated total per worker.",
		}, []string{"worker"}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time between fan-out and join.",
		}),
		bestTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "best_total",
			Help:      "Highest total among all workers.",
		}),
	}
	m.registry.MustRegister(
		m.workersCompleted,
		m.samplesDrawn,
		m.workerDuration,
		m.workerTotal,
		m.runDuration,
		m.bestTotal,
	)
	return m
}

// ObserveWorker records a finished worker.
func (m *RunMetrics) ObserveWorker(id int, samples int, total uint64, d time.Duration) {
	m.workersCompleted.Inc()
	m.samplesDrawn.Add(float64(samples))
	m.workerDuration.Observe(d.Seconds())
	m.workerTotal.WithLabelValues(strconv.Itoa(id)).Set(float64(total))
}

// ObserveRun records the join of all workers.
func (m *RunMetrics) ObserveRun(d time.Duration) {
	m.runDuration.Set(d.Seconds())
}

// ObserveBest records the winning total.
func (m *RunMetrics) ObserveBest(total uint64) {
	m.bestTotal.Set(float64(total))
}

// Gatherer exposes the registry, e.g. for promhttp or testutil.
func (m *RunMetrics) Gatherer() prometheus.Gatherer { return m.registry }

// WriteTextfile writes the registry in the Prometheus text exposition format,
// suitable for the node_exporter textfile collector.
func (m *RunMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
