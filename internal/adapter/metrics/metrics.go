package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RelayMetrics holds all Prometheus metrics for the relay client and the
// domain facades.
type RelayMetrics struct {
	TokenRequestsTotal    *prometheus.CounterVec
	ResourceRequestsTotal *prometheus.CounterVec
	RequestDuration       *prometheus.HistogramVec
	TokenCacheHits        prometheus.Counter
	TokenCacheMisses      prometheus.Counter
	OperationFailures     *prometheus.CounterVec
}

var (
	relayOnce    sync.Once
	relayMetrics *RelayMetrics
)

// NewRelayMetrics initializes and registers the Prometheus metrics. The
// collectors are registered once per process; later calls return the same set.
func NewRelayMetrics() *RelayMetrics {
	relayOnce.Do(func() {
		relayMetrics = &RelayMetrics{
			TokenRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "cloudburst",
				Subsystem: "relay",
				Name:      "token_requests_total",
				Help:      "Total number of WRAP token requests by outcome.",
			}, []string{"status"}), // status: ok, error
			ResourceRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "cloudburst",
				Subsystem: "relay",
				Name:      "resource_requests_total",
				Help:      "Total number of relayed resource requests by kind and outcome.",
			}, []string{"kind", "status"}), // kind: json, stream; status: ok, auth_error, transport_error, decode_error
			RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "cloudburst",
				Subsystem: "relay",
				Name:      "request_duration_seconds",
				Help:      "Latency of relayed resource requests, including token acquisition.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"kind"}),
			TokenCacheHits: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "cloudburst",
				Subsystem: "relay",
				Name:      "token_cache_hits_total",
				Help:      "Total number of token cache hits.",
			}),
			TokenCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "cloudburst",
				Subsystem: "relay",
				Name:      "token_cache_misses_total",
				Help:      "Total number of token cache misses.",
			}),
			OperationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "cloudburst",
				Subsystem: "service",
				Name:      "operation_failures_total",
				Help:      "Total number of failed facade operations by operation name.",
			}, []string{"operation"}),
		}
	})
	return relayMetrics
}
