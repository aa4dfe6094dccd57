// Package metrics exposes Prometheus counters for the generation pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics recorders are no-ops on a nil receiver.
type Metrics struct {
	providerCalls    *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	cascadeNodes     *prometheus.CounterVec
	artifacts        *prometheus.CounterVec
}

// New creates the pipeline metrics and registers them on registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		providerCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_provider_calls_total",
				Help: "Generative provider calls by operation and outcome",
			},
			[]string{"operation", "status"}, // operation: chat, image; status: ok, error
		),
		providerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_provider_call_duration_seconds",
				Help:    "Latency of generative provider calls",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
			},
			[]string{"operation"},
		),
		cascadeNodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_cascade_nodes_total",
				Help: "Generated entities by kind and outcome",
			},
			[]string{"kind", "outcome"}, // outcome: persisted, aborted
		),
		artifacts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_artifacts_total",
				Help: "Artifact cache lookups and writes by category",
			},
			[]string{"category", "result"}, // result: hit, written, failed
		),
	}

	for _, c := range []prometheus.Collector{m.providerCalls, m.providerDuration, m.cascadeNodes, m.artifacts} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) ObserveProviderCall(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.providerCalls.WithLabelValues(operation, status).Inc()
	m.providerDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) RecordNode(kind, outcome string) {
	if m == nil {
		return
	}
	m.cascadeNodes.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) RecordArtifact(category, result string) {
	if m == nil {
		return
	}
	m.artifacts.WithLabelValues(category, result).Inc()
}
