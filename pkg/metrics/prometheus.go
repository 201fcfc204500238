package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchAttempts *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	cacheOps      *prometheus.CounterVec
	lastValue     *prometheus.GaugeVec
	fetchLatency  *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kindex_fetch_attempts_total",
				Help: "Total upstream fetch attempts by request profile and outcome",
			},
			[]string{"profile", "outcome"},
		),
		fallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kindex_fetch_fallbacks_total",
				Help: "Total subprocess fallback invocations by outcome",
			},
			[]string{"outcome"},
		),
		cacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kindex_cache_operations_total",
				Help: "Cache operations by op and result",
			},
			[]string{"op", "result"},
		),
		lastValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kindex_index_last_value",
				Help: "Last observed value for an index",
			},
			[]string{"index"},
		),
		fetchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kindex_fetch_duration_seconds",
				Help:    "Duration of upstream fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
}

// RecordFetchAttempt records one upstream attempt for a request profile.
func (r *Recorder) RecordFetchAttempt(profile, outcome string) {
	r.fetchAttempts.WithLabelValues(profile, outcome).Inc()
}

// RecordFallback records a subprocess fallback invocation.
func (r *Recorder) RecordFallback(outcome string) {
	r.fallbacks.WithLabelValues(outcome).Inc()
}

// RecordCache records a cache operation.
func (r *Recorder) RecordCache(op, result string) {
	r.cacheOps.WithLabelValues(op, result).Inc()
}

// RecordLastValue records the last observed value for an index.
func (r *Recorder) RecordLastValue(index string, value float64) {
	r.lastValue.WithLabelValues(index).Set(value)
}

// RecordFetchLatency records upstream fetch latency in seconds.
func (r *Recorder) RecordFetchLatency(endpoint string, seconds float64) {
	r.fetchLatency.WithLabelValues(endpoint).Observe(seconds)
}
