package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})

	// CacheResults counts cache-aside lookups by cache and result (hit, miss, error).
	CacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_cache_results_total",
		Help: "Cache lookups by cache name and result",
	}, []string{"cache", "result"})

	// AuthFailures counts rejected authentication attempts by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_auth_failures_total",
		Help: "Rejected authentication attempts by reason",
	}, []string{"reason"})

	// RelationshipMutations counts favorite and follow changes.
	RelationshipMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_relationship_mutations_total",
		Help: "Favorite and follow mutations by kind and action",
	}, []string{"kind", "action"})

	// DatabaseQueryLatency records query latency by statement verb.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "conduit_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// ObserveQuery records the latency of a SQL statement, labelled by its leading verb.
func ObserveQuery(sql string, elapsed time.Duration) {
	DatabaseQueryLatency.WithLabelValues(statementVerb(sql)).Observe(elapsed.Seconds())
}

func statementVerb(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	switch verb := strings.ToLower(fields[0]); verb {
	case "select", "insert", "update", "delete":
		return verb
	default:
		return "other"
	}
}
