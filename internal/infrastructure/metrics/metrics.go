package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TasksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agentos_tasks_processed_total",
			Help: "Total number of tasks that reached a terminal state",
		},
		[]string{"outcome"},
	)

	ProcessingSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "agentos_task_processing_seconds",
			Help: "Wall-clock processing duration of completed tasks",
		},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agentos_queue_depth",
			Help: "Number of task ids waiting in the work queue",
		},
	)

	ActiveTasks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agentos_active_tasks",
			Help: "Number of tasks currently in processing",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agentos_cache_lookups_total",
			Help: "Content cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
