// Package metrics provides Prometheus instrumentation for tokenguard.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tokenguard",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tokenguard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ValidationsTotal counts full validations by resulting risk level.
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tokenguard",
			Name:      "validations_total",
			Help:      "Total full token validations by resulting risk level.",
		},
		[]string{"risk_level"},
	)

	// ValidationDuration observes end-to-end full validation latency.
	ValidationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tokenguard",
			Name:      "validation_duration_seconds",
			Help:      "Full validation duration in seconds.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	// QuickChecksTotal counts quick checks by resulting risk level.
	QuickChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tokenguard",
			Name:      "quick_checks_total",
			Help:      "Total quick security checks by resulting risk level.",
		},
		[]string{"risk_level"},
	)

	// StageSignalMissing counts validation stages that timed out or errored
	// and were degraded to signal-absent.
	StageSignalMissing = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tokenguard",
			Name:      "stage_signal_missing_total",
			Help:      "Validation stages degraded to signal-absent, by stage.",
		},
		[]string{"stage"},
	)

	// CacheHits counts validation cache hits.
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tokenguard",
		Name:      "validation_cache_hits_total",
		Help:      "Validation result cache hits.",
	})

	// CacheMisses counts validation cache misses.
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tokenguard",
		Name:      "validation_cache_misses_total",
		Help:      "Validation result cache misses.",
	})

	// ProviderRequestsTotal counts collaborator calls by provider and result.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tokenguard",
			Name:      "provider_requests_total",
			Help:      "External provider requests by provider and result.",
		},
		[]string{"provider", "result"},
	)

	// ActiveWebSocketClients tracks connected alert-stream clients.
	ActiveWebSocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tokenguard",
			Name:      "active_websocket_clients",
			Help:      "Number of currently connected WebSocket clients.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ValidationsTotal,
		ValidationDuration,
		QuickChecksTotal,
		StageSignalMissing,
		CacheHits,
		CacheMisses,
		ProviderRequestsTotal,
		ActiveWebSocketClients,
	)
}

// Middleware records request counts and latency for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus scrape endpoint as a gin handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
