package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	schedulerRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "emission_settlement",
		Subsystem: "scheduler",
		Name:      "runs_total",
		Help:      "Count of scheduled job runs.",
	}, []string{"job", "status"})

	schedulerRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "emission_settlement",
		Subsystem: "scheduler",
		Name:      "run_duration_seconds",
		Help:      "Duration of scheduled job runs.",
		Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 300, 900},
	}, []string{"job", "status"})

	schedulerRunItems = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "emission_settlement",
		Subsystem: "scheduler",
		Name:      "run_items",
		Help:      "Number of windows handled per run.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"job"})
)

// Scheduler tracks metrics for scheduled settlement jobs.
type Scheduler struct{}

// NewScheduler constructs a Scheduler metrics collector.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// ObserveRun records a job run with the number of windows it handled.
func (m Scheduler) ObserveRun(job string, items int, err error, started time.Time) {
	if job == "" {
		job = "unknown"
	}
	status := statusOf(err)
	schedulerRunsTotal.WithLabelValues(job, status).Inc()
	schedulerRunDuration.WithLabelValues(job, status).Observe(time.Since(started).Seconds())
	schedulerRunItems.WithLabelValues(job).Observe(float64(items))
}
