package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveUpstream(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveUpstream("GET", 200, 150*time.Millisecond)
	m.ObserveUpstream("GET", 200, 50*time.Millisecond)
	m.ObserveUpstream("GET", 404, 10*time.Millisecond)
	m.ObserveUpstreamFailure("GET")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("GET", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.UpstreamRequestDuration))
}

func TestMetrics_Cache(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal))
}
