package services

import (
	"sync"

	"github.com/agentos/backend/internal/infrastructure/metrics"
)

const ewmaSmoothing = 0.9

// MetricsTracker keeps the in-process performance counters. It is owned by
// the orchestrator instance, not a package singleton, and resets with the
// process.
type MetricsTracker struct {
	mu        sync.Mutex
	processed int64
	avgTime   float64
	rate      float64
}

func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{rate: 1.0}
}

// RecordSuccess updates the processed count, the exponentially weighted
// average processing time (new = 0.9*old + 0.1*current) and the running
// success rate.
func (m *MetricsTracker) RecordSuccess(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed++
	m.avgTime = m.avgTime*ewmaSmoothing + seconds*(1-ewmaSmoothing)
	n := float64(m.processed)
	m.rate = (m.rate*(n-1) + 1) / n

	metrics.TasksProcessed.WithLabelValues("success").Inc()
	metrics.ProcessingSeconds.Observe(seconds)
}

// RecordFailure updates the processed count and success rate only; failed
// tasks do not contribute to the processing-time average.
func (m *MetricsTracker) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed++
	n := float64(m.processed)
	m.rate = m.rate * (n - 1) / n

	metrics.TasksProcessed.WithLabelValues("failure").Inc()
}

func (m *MetricsTracker) Snapshot() (processed int64, avgTime, successRate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.processed, m.avgTime, m.rate
}
