// metrics.go: Optional Prometheus metrics for one plugin instance
//
// Metrics are off by default. When enabled they are limited to atomic
// counter increments and one gauge store per state transition; nothing here
// allocates on the audio path or takes a lock. Label values come from a
// fixed set of operation names, so cardinality is bounded.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AdapterMetrics collects protocol-level metrics for a plugin instance.
type AdapterMetrics struct {
	misbehavior  *prometheus.CounterVec
	processCalls *prometheus.CounterVec
	state        prometheus.Gauge
}

// Numeric lifecycle states exported through the state gauge.
const (
	metricStateUninitialized = 0
	metricStateInactive      = 1
	metricStateActive        = 2
	metricStateProcessing    = 3
	metricStateDestroyed     = 4
)

// NewAdapterMetrics creates and registers the instance metrics on the given
// registerer. Pass prometheus.DefaultRegisterer for the process-global
// registry, or a private registry in tests.
func NewAdapterMetrics(reg prometheus.Registerer, instanceID string) (*AdapterMetrics, error) {
	labels := prometheus.Labels{"instance_id": instanceID}

	m := &AdapterMetrics{
		misbehavior: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "goclap",
			Name:        "host_misbehavior_total",
			Help:        "Protocol violations committed by the host, by entry point.",
			ConstLabels: labels,
		}, []string{"operation"}),
		processCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "goclap",
			Name:        "process_calls_total",
			Help:        "Audio process calls, by returned status.",
			ConstLabels: labels,
		}, []string{"status"}),
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "goclap",
			Name:        "lifecycle_state",
			Help:        "Current lifecycle state (0 uninitialized, 1 inactive, 2 active, 3 processing, 4 destroyed).",
			ConstLabels: labels,
		}),
	}

	for _, c := range []prometheus.Collector{m.misbehavior, m.processCalls, m.state} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *AdapterMetrics) observeMisbehavior(operation string) {
	m.misbehavior.WithLabelValues(operation).Inc()
}

func (m *AdapterMetrics) observeProcess(status ProcessStatus) {
	m.processCalls.WithLabelValues(status.String()).Inc()
}

func (m *AdapterMetrics) observeState(state float64) {
	m.state.Set(state)
}
