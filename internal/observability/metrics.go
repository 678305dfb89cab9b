package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parlor_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parlor_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsCreated counts posts created.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parlor_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts comments created by kind (post or reply).
	CommentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parlor_comments_created_total",
		Help: "Total number of comments created",
	}, []string{"kind"})

	// SignupsTotal counts successful account creations.
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parlor_signups_total",
		Help: "Total number of accounts created",
	})

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parlor_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})
)
