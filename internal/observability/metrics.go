package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devfolio_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devfolio_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ProfileUpserts counts profile upserts by outcome (created or merged).
	ProfileUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devfolio_profile_upserts_total",
		Help: "Total number of profile upserts by outcome",
	}, []string{"outcome"})

	// LikeToggles counts like toggles by direction (liked or unliked).
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devfolio_like_toggles_total",
		Help: "Total number of like toggles by direction",
	}, []string{"direction"})

	// AuthRejections counts requests rejected by the authorization gate.
	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devfolio_auth_rejections_total",
		Help: "Total number of requests rejected by the auth middleware",
	}, []string{"reason"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
