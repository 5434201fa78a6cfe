package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var activeSessionCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_session_count",
	Help: "Number of live document sessions",
})

var navEventsDropped = promauto.NewCounter(prometheus.CounterOpts{
	Name: "navigation_events_dropped_total",
	Help: "Navigation events dropped because the render warmer was behind",
})

var staleResultsDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "stale_results_discarded_total",
	Help: "Late collaborator results discarded by the session generation guard",
}, []string{"operation"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementActiveSessions() {
	activeSessionCount.Inc()
}

func DecrementActiveSessions() {
	activeSessionCount.Dec()
}

func IncrementNavEventsDropped() {
	navEventsDropped.Inc()
}

func IncrementStaleResultsDiscarded(operation string) {
	staleResultsDiscarded.WithLabelValues(operation).Inc()
}

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

var operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "session_operation_duration_seconds",
	Help:    "Total time spent in session controller operations.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"operation"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureOperationMetrics(label string, timeElapsed time.Duration) {
	operationDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
