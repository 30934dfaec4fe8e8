package consumer

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	consumedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "consumer",
		Name:      "events_consumed_total",
		Help:      "Number of roster events applied to the projection.",
	}, []string{"topic", "event_type"})

	decodeFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "consumer",
		Name:      "decode_failures_total",
		Help:      "Number of Kafka messages that could not be decoded as roster events.",
	}, []string{"topic"})

	lastEventGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "activities_service",
		Subsystem: "consumer",
		Name:      "last_event_timestamp_seconds",
		Help:      "Timestamp of the most recent roster event applied.",
	}, []string{"topic"})
)

func init() {
	prometheus.MustRegister(consumedCounter, decodeFailureCounter, lastEventGauge)
}

// RecordConsumed updates counters for successfully applied events.
func RecordConsumed(msg Message) {
	eventType := msg.Headers["event_type"]
	consumedCounter.WithLabelValues(msg.Topic, eventType).Inc()
	if !msg.Timestamp.IsZero() {
		lastEventGauge.WithLabelValues(msg.Topic).Set(float64(msg.Timestamp.Unix()))
	}
}

// RecordDecodeFailure counts an undecodable message.
func RecordDecodeFailure(topic string) {
	decodeFailureCounter.WithLabelValues(topic).Inc()
}
