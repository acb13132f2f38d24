package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP surface
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemood_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Upstream calls (tmdb, openai)
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_upstream_requests_total",
			Help: "Total number of calls to third-party APIs",
		},
		[]string{"upstream", "operation", "result"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemood_upstream_request_duration_seconds",
			Help:    "Duration of calls to third-party APIs in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"upstream", "operation"},
	)

	// LLMFallbacks counts language-model operations that returned their fallback value.
	LLMFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_llm_fallbacks_total",
			Help: "Total number of language-model operations answered with a fallback value",
		},
		[]string{"operation", "reason"},
	)

	// Cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_cache_hits_total",
			Help: "Total number of Redis cache hits",
		},
		[]string{"namespace"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_cache_misses_total",
			Help: "Total number of Redis cache misses",
		},
		[]string{"namespace"},
	)

	// PersistenceFailures counts writes that were logged and swallowed.
	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemood_persistence_failures_total",
			Help: "Total number of swallowed persistence write failures",
		},
		[]string{"table"},
	)
)
