package addon

import (
	"bytes"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dbytex91/nasavideos/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCache_Do(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	rc := NewRequestCache(1024*1024, time.Minute, m)

	calls := 0
	fn := func() ([]byte, error) {
		calls++
		return []byte(`{"items":[]}`), nil
	}

	key := []any{"apollo", map[string]any{"center": "KSC"}, nil}
	first, err := rc.Do(key, fn)
	require.NoError(t, err)
	second, err := rc.Do(key, fn)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal))

	_, err = rc.Do([]any{"apollo", map[string]any{"center": "KSC"}, 2}, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRequestCache_DoDoesNotCacheErrors(t *testing.T) {
	rc := NewRequestCache(1024*1024, time.Minute, nil)
	errUpstream := errors.New("upstream failed")

	calls := 0
	fn := func() ([]byte, error) {
		calls++
		return nil, errUpstream
	}

	_, err := rc.Do("key", fn)
	assert.ErrorIs(t, err, errUpstream)
	_, err = rc.Do("key", fn)
	assert.ErrorIs(t, err, errUpstream)
	assert.Equal(t, 2, calls)
}

func TestRequestCache_DoCollapsesConcurrentCalls(t *testing.T) {
	rc := NewRequestCache(1024*1024, time.Minute, nil)

	var calls atomic.Int32
	release := make(chan struct{})
	fn := func() ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("ok"), nil
	}

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := rc.Do("same", fn)
			assert.NoError(t, err)
			assert.Equal(t, []byte("ok"), data)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestFingerprint(t *testing.T) {
	a, err := fingerprint([]any{"q", map[string]any{"a": 1, "b": 2}, nil})
	require.NoError(t, err)
	b, err := fingerprint([]any{"q", map[string]any{"b": 2, "a": 1}, nil})
	require.NoError(t, err)
	c, err := fingerprint([]any{"q", map[string]any{"a": 1, "b": 2}, 1})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	_, err = fingerprint(make(chan int))
	assert.Error(t, err)
}

func TestRequestCache_DoStoresEntriesAboveFreecacheLimit(t *testing.T) {
	rc := NewRequestCache(cacheSize, time.Minute, nil)
	page := bytes.Repeat([]byte(`{"id":"video","name":"Apollo mission footage","description":"Launch of the Saturn V"},`), 1000)
	require.Greater(t, len(page), cacheSize/1024)

	calls := 0
	fn := func() ([]byte, error) {
		calls++
		return page, nil
	}

	first, err := rc.Do("apollo", fn)
	require.NoError(t, err)
	second, err := rc.Do("apollo", fn)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, page, first)
	assert.Equal(t, page, second)
}
