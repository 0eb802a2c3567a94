// Package cache provides caching decorators for the heart-rate estimator.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"rppg_backend/internal/feature/heartrate/domain"
	"rppg_backend/internal/feature/heartrate/domain/entity"
	"rppg_backend/internal/feature/heartrate/usecase"
)

const (
	// DefaultTTL is used when the configured TTL is not positive.
	DefaultTTL = 10 * time.Minute
	// DefaultNamespace prefixes every key when no namespace is configured.
	DefaultNamespace = "heartrate"
)

// CachingEstimator decorates an Estimator with Redis caching.
// Identical concurrent requests are merged into a single computation.
// Only successful estimates are cached.
type CachingEstimator struct {
	inner     usecase.Estimator
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	group     singleflight.Group
}

var _ usecase.Estimator = (*CachingEstimator)(nil)

// NewCachingEstimator decorates inner with Redis caching.
// A nil rdb disables the Redis layer but keeps request coalescing.
// If ttl is 0 it defaults to 10 minutes. If namespace is empty it uses "heartrate".
func NewCachingEstimator(rdb *redis.Client, ttl time.Duration, inner usecase.Estimator, namespace string) *CachingEstimator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingEstimator{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Estimate returns the cached estimate for sig, computing and storing it on a miss.
// The shared computation does not inherit cancellation from any one caller;
// a caller whose ctx ends stops waiting while the others still get the result.
func (c *CachingEstimator) Estimate(ctx context.Context, sig entity.Signal) (*entity.Estimate, error) {
	key := c.cacheKey(sig)

	ch := c.group.DoChan(key, func() (any, error) {
		return c.load(context.WithoutCancel(ctx), key, sig)
	})
	select {
	case <-ctx.Done():
		return nil, domain.NewAnalysisError(domain.ErrComputation, "analysis aborted: %v", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entity.Estimate), nil
	}
}

func (c *CachingEstimator) load(ctx context.Context, key string, sig entity.Signal) (*entity.Estimate, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Estimate(ctx, sig)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Estimate
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to computation
	out, err := c.inner.Estimate(ctx, sig)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Ping reports whether the Redis layer is reachable.
// It returns ErrDisabled when no client is configured.
func (c *CachingEstimator) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return ErrDisabled
	}
	return c.rdb.Ping(ctx).Err()
}

// cacheKey derives a content-addressed key from the sample rate and the exact sample bits.
func (c *CachingEstimator) cacheKey(sig entity.Signal) string {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(sig.SampleRate))
	h.Write(buf[:])
	for _, v := range sig.Samples {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return fmt.Sprintf("%s:%s", safe(c.namespace), hex.EncodeToString(h.Sum(nil)))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
