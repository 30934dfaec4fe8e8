package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "registry",
		Name:      "signups_total",
		Help:      "Completed signups by activity.",
	}, []string{"activity"})
	unregistrationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "registry",
		Name:      "unregistrations_total",
		Help:      "Completed unregistrations by activity.",
	}, []string{"activity"})
	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_service",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route template and status code.",
	}, []string{"route", "status"})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "activities_service",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(signupCounter, unregistrationCounter, requestCounter, requestDuration)
}

// RecordSignup increments the signup counter for the activity.
func RecordSignup(activity string) {
	signupCounter.WithLabelValues(activity).Inc()
}

// RecordUnregistration increments the unregistration counter for the activity.
func RecordUnregistration(activity string) {
	unregistrationCounter.WithLabelValues(activity).Inc()
}

// RecordHTTPRequest tracks one served request.
func RecordHTTPRequest(route, status string, elapsed time.Duration) {
	requestCounter.WithLabelValues(route, status).Inc()
	requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
