package providers

import (
	"time"

	"github.com/ZamarianPatrick/oasis-backend/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncReplacements(outcome string)
	IncWaterings()
	IncCacheHits()
	IncCacheMisses()
	SetSubscribers(count int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	replacements    *prometheus.CounterVec
	waterings       prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	subscribers     prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncReplacements(outcome string) {
	m.replacements.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncWaterings() {
	m.waterings.Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) SetSubscribers(count int) {
	m.subscribers.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "oasis_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "oasis_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		replacements: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "oasis_replacements_total",
			Help: "Replacement requests by outcome",
		}, []string{"outcome"}),

		waterings: promauto.NewCounter(prometheus.CounterOpts{
			Name: "oasis_waterings_total",
			Help: "Total number of waterings of the current plant",
		}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "oasis_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "oasis_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		subscribers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "oasis_feed_subscribers",
			Help: "Number of connected change feed subscribers",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncReplacements(_ string)                         {}
func (n *noopMetrics) IncWaterings()                                    {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) SetSubscribers(_ int)                             {}
