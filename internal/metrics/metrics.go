package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

// New registers the addon metrics on reg. Pass prometheus.DefaultRegisterer
// to expose them through promhttp.Handler.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nasavideos_upstream_requests_total",
				Help: "Total number of requests sent to the NASA API",
			},
			[]string{"method", "status"},
		),
		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nasavideos_upstream_request_duration_seconds",
				Help:    "NASA API request duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method"},
		),
		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nasavideos_request_cache_hits_total",
				Help: "Total number of catalog requests served from the request cache",
			},
		),
		CacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nasavideos_request_cache_misses_total",
				Help: "Total number of catalog requests that missed the request cache",
			},
		),
	}
}

func (m *Metrics) ObserveUpstream(method string, status int, duration time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.UpstreamRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) ObserveUpstreamFailure(method string) {
	m.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
}

func (m *Metrics) CacheHit() {
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) CacheMiss() {
	m.CacheMissesTotal.Inc()
}
