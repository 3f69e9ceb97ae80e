// Package metrics holds the Prometheus instruments of the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sentiment_pipeline"

// Metrics holds all Prometheus metrics for pipeline runs.
type Metrics struct {
	RunsTotal            *prometheus.CounterVec
	StageDurationSeconds *prometheus.HistogramVec
	StageRecordsTotal    *prometheus.CounterVec
	StageFailuresTotal   *prometheus.CounterVec
}

// New creates and registers the metrics on reg (the default registerer when nil).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by final status",
		}, []string{"status"}),
		StageDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time per pipeline stage",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"stage"}),
		StageRecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_records_total",
			Help:      "Records emitted by each stage",
		}, []string{"stage"}),
		StageFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Stage failures by error kind",
		}, []string{"stage", "kind"}),
	}
}
