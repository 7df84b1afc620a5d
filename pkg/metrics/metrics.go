// Package metrics implements the observability hooks with Prometheus.
//
//	m := metrics.New(prometheus.NewRegistry())
//	m.Register()                      // install as observability hooks
//	r.Handle("/metrics", m.Handler()) // expose
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orbifold/cytoconv/pkg/errors"
	"github.com/orbifold/cytoconv/pkg/observability"
)

// Metrics holds the collectors and implements the observability hook
// interfaces.
type Metrics struct {
	gatherer prometheus.Gatherer

	ConversionsTotal   *prometheus.CounterVec
	ConversionDuration *prometheus.HistogramVec
	ConvertedItems     *prometheus.CounterVec
	CacheEvents        *prometheus.CounterVec
	CacheBytes         *prometheus.CounterVec
	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,

		ConversionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cytoconv_conversions_total",
				Help: "Total number of conversions, by direction and result code",
			},
			[]string{"direction", "code"},
		),
		ConversionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cytoconv_conversion_duration_seconds",
				Help:    "Duration of conversions in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"direction"},
		),
		ConvertedItems: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cytoconv_converted_items_total",
				Help: "Nodes and edges produced by successful conversions",
			},
			[]string{"direction", "kind"},
		),
		CacheEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cytoconv_cache_events_total",
				Help: "Cache hits, misses and writes, by key type",
			},
			[]string{"key_type", "event"},
		),
		CacheBytes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cytoconv_cache_written_bytes_total",
				Help: "Bytes written to the cache, by key type",
			},
			[]string{"key_type"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cytoconv_http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cytoconv_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
	}
}

// Register installs m as the process-wide conversion, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetConversionHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// OnConvertStart implements observability.ConversionHooks.
func (m *Metrics) OnConvertStart(context.Context, string, int) {}

// OnConvertComplete implements observability.ConversionHooks.
func (m *Metrics) OnConvertComplete(_ context.Context, direction string, nodes, edges int, d time.Duration, err error) {
	code := "OK"
	if err != nil {
		code = string(errors.GetCode(err))
		if code == "" {
			code = string(errors.ErrCodeInternal)
		}
	}
	m.ConversionsTotal.WithLabelValues(direction, code).Inc()
	m.ConversionDuration.WithLabelValues(direction).Observe(d.Seconds())
	if err == nil {
		m.ConvertedItems.WithLabelValues(direction, "nodes").Add(float64(nodes))
		m.ConvertedItems.WithLabelValues(direction, "edges").Add(float64(edges))
	}
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheEvents.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheEvents.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheEvents.WithLabelValues(keyType, "set").Inc()
	m.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// OnRequest implements observability.HTTPHooks.
func (m *Metrics) OnRequest(context.Context, string, string) {}

// OnResponse implements observability.HTTPHooks.
func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.ConversionHooks = (*Metrics)(nil)
	_ observability.CacheHooks      = (*Metrics)(nil)
	_ observability.HTTPHooks       = (*Metrics)(nil)
)
