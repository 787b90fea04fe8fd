package addon

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"io"
	"time"

	"github.com/coocood/freecache"
	"github.com/dbytex91/nasavideos/internal/metrics"
	"github.com/gofiber/fiber/v2/log"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/singleflight"
)

// RequestCache stores encoded action responses keyed by a fingerprint of the
// request. Concurrent calls with the same key share a single computation.
// Entries are gzipped since freecache rejects values above 1/1024 of its size.
type RequestCache struct {
	cache   *freecache.Cache
	group   singleflight.Group
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewRequestCache(size int, ttl time.Duration, m *metrics.Metrics) *RequestCache {
	return &RequestCache{
		cache:   freecache.NewCache(size),
		ttl:     ttl,
		metrics: m,
	}
}

// Do returns the cached response for key or runs fn and caches its result.
// Errors from fn are returned as is and never cached.
func (rc *RequestCache) Do(key any, fn func() ([]byte, error)) ([]byte, error) {
	fp, err := fingerprint(key)
	if err != nil {
		return nil, err
	}

	if compressed, err := rc.cache.Get(fp); err == nil {
		data, err := decompress(compressed)
		if err == nil {
			rc.observe(true)
			return data, nil
		}
		log.Warnf("Failed to read cached response: %v", err)
	}
	rc.observe(false)

	v, err, _ := rc.group.Do(hex.EncodeToString(fp), func() (any, error) {
		data, err := fn()
		if err != nil {
			return nil, err
		}

		compressed, err := compress(data)
		if err != nil {
			log.Warnf("Failed to compress response: %v", err)
			return data, nil
		}

		if err := rc.cache.Set(fp, compressed, int(rc.ttl.Seconds())); err != nil {
			log.Warnf("Failed to cache response of %d bytes: %v", len(compressed), err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}

func (rc *RequestCache) observe(hit bool) {
	if rc.metrics == nil {
		return
	}

	if hit {
		rc.metrics.CacheHit()
	} else {
		rc.metrics.CacheMiss()
	}
}

func fingerprint(key any) ([]byte, error) {
	data, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}

	sum := sha1.Sum(data)
	return sum[:], nil
}

func compress(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := gzip.NewWriter(buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
