package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ZamarianPatrick/oasis-backend/structures"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTestRegistry(t *testing.T) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	m := NewMetricsProvider(&structures.Config{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/catalog", 200)
	m.ObserveRequestDuration("/catalog", time.Millisecond)
	m.IncReplacements("replaced")
	m.IncWaterings()
	m.IncCacheHits()
	m.IncCacheMisses()
	m.SetSubscribers(2)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	withTestRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	mp, ok := m.(*MetricsProvider)
	require.True(t, ok)

	m.IncReplacements("replaced")
	m.IncReplacements("replaced")
	m.IncReplacements("not_ready")
	m.IncWaterings()
	m.SetSubscribers(3)

	assert.Equal(t, float64(2), testutil.ToFloat64(mp.replacements.WithLabelValues("replaced")))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.replacements.WithLabelValues("not_ready")))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.waterings))
	assert.Equal(t, float64(3), testutil.ToFloat64(mp.subscribers))
}

func TestHttpStatusBucket(t *testing.T) {
	assert.Equal(t, "1xx", httpStatusBucket(101))
	assert.Equal(t, "2xx", httpStatusBucket(201))
	assert.Equal(t, "3xx", httpStatusBucket(304))
	assert.Equal(t, "4xx", httpStatusBucket(409))
	assert.Equal(t, "5xx", httpStatusBucket(500))
}

func TestMetricsMiddleware_RecordsRouteTemplate(t *testing.T) {
	withTestRegistry(t)
	gin.SetMode(gin.TestMode)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}).(*MetricsProvider)

	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/plants/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plants/7", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("/plants/:id", "4xx")))
}
