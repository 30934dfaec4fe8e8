package outbox

import "github.com/prometheus/client_golang/prometheus"

var (
	deliveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "outbox",
		Name:      "events_delivered_total",
		Help:      "Number of roster events successfully published to Kafka.",
	})

	failedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "outbox",
		Name:      "events_failed_total",
		Help:      "Number of roster events that failed to publish and were requeued.",
	})

	droppedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "outbox",
		Name:      "events_dropped_total",
		Help:      "Number of roster events dropped because the buffer was full.",
	})

	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "activities_service",
		Subsystem: "outbox",
		Name:      "batch_duration_seconds",
		Help:      "Time spent encoding and delivering roster event batches.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(deliveredCounter, failedCounter, droppedCounter, batchDuration)
}
