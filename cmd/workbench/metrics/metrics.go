// Package metrics provides Prometheus metrics instrumentation for the workbench.
//
// It exposes operational metrics about experiment runs and snapshot storage.
// All metrics are exposed via the /metrics HTTP endpoint for Prometheus
// scraping.
//
// Metrics exposed:
//   - oscillab_experiment_runs_total: Counter of experiment runs by status
//   - oscillab_experiment_stage_duration_seconds: Histogram of run stage durations
//   - oscillab_experiment_windows_evaluated: Gauge of test windows scored in the last run
//   - oscillab_store_errors_total: Counter of snapshot store errors
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ExperimentRunsTotal *prometheus.CounterVec
	StageDuration       *prometheus.HistogramVec
	WindowsEvaluated    prometheus.Gauge
	StoreErrors         prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		ExperimentRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "oscillab_experiment_runs_total",
			Help: "Total number of experiment runs by status",
		}, []string{"status"}),

		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "oscillab_experiment_stage_duration_seconds",
			Help:    "Duration of experiment run stages",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),

		WindowsEvaluated: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "oscillab_experiment_windows_evaluated",
			Help: "Number of test windows scored by the last experiment run",
		}),

		StoreErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "oscillab_store_errors_total",
			Help: "Total number of snapshot store errors",
		}),
	}
}

func (m *Metrics) RecordRun(status string) {
	m.ExperimentRunsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveStage(stage string, seconds float64) {
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
}

func (m *Metrics) SetWindowsEvaluated(windows int) {
	m.WindowsEvaluated.Set(float64(windows))
}

func (m *Metrics) RecordStoreError() {
	m.StoreErrors.Inc()
}
