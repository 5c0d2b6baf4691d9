// Package metrics holds the Prometheus collectors for the auto-reply pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Decisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_decisions_total",
			Help: "Total number of auto-response decisions by kind",
		},
		[]string{"kind"},
	)

	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "concierge_completion_duration_seconds",
			Help:    "Duration of answer generation in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
	)

	RepliesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_replies_sent_total",
			Help: "Total number of outbound replies by agent",
		},
		[]string{"agent"},
	)

	RepliesThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "concierge_replies_throttled_total",
			Help: "Inbound messages left unanswered by the per-sender rate limit",
		},
	)

	ScheduledProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_scheduled_processed_total",
			Help: "Scheduled messages processed by outcome",
		},
		[]string{"status"},
	)

	WorkersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "concierge_responder_jobs_active",
			Help: "Number of inbound messages currently being handled",
		},
	)
)

// ObserveCompletion records how long an answer took to generate.
func ObserveCompletion(start time.Time) {
	CompletionDuration.Observe(time.Since(start).Seconds())
}
