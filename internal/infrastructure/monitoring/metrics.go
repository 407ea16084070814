package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	UpstreamFetches     *prometheus.CounterVec
	UpstreamLatency     *prometheus.HistogramVec
	MetricCacheHits     *prometheus.CounterVec
	ReportTransitions   *prometheus.CounterVec
	RateLimitHits       prometheus.Counter
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskboard_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskboard_http_request_duration_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		UpstreamFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskboard_upstream_fetches_total",
				Help: "Total number of metric fetches against the backend.",
			},
			[]string{"metric_type", "result"},
		),
		UpstreamLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskboard_upstream_fetch_duration_seconds",
				Help:    "Latency of metric fetches against the backend.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"metric_type"},
		),
		MetricCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskboard_metric_cache_requests_total",
				Help: "Metric cache lookups by outcome.",
			},
			[]string{"metric_type", "outcome"},
		),
		ReportTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskboard_report_transitions_total",
				Help: "Report lifecycle transitions.",
			},
			[]string{"to_status"},
		),
		RateLimitHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "riskboard_rate_limit_hits_total",
				Help: "Requests rejected by the per-tenant rate limiter.",
			},
		),
	}
}

// RecordUpstreamFetch records one fetch against the metrics backend. Safe on
// a nil receiver so metrics stay optional in tests.
func (m *Metrics) RecordUpstreamFetch(metricType, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamFetches.WithLabelValues(metricType, result).Inc()
	m.UpstreamLatency.WithLabelValues(metricType).Observe(duration.Seconds())
}

// RecordCacheLookup records a metric cache hit or miss.
func (m *Metrics) RecordCacheLookup(metricType string, hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.MetricCacheHits.WithLabelValues(metricType, outcome).Inc()
}

// RecordReportTransition records a report lifecycle transition.
func (m *Metrics) RecordReportTransition(toStatus string) {
	if m == nil {
		return
	}
	m.ReportTransitions.WithLabelValues(toStatus).Inc()
}

// RecordRateLimitHit records a request rejected by the per-tenant limiter.
func (m *Metrics) RecordRateLimitHit() {
	if m == nil {
		return
	}
	m.RateLimitHits.Inc()
}
