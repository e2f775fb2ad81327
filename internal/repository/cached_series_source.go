package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
	pkgcache "github.com/MarkCoder7/pktvisor/pkg/cache"
)

// CachedSeriesSource memoizes raw source rows in a cache service so repeated
// session starts do not hit the backing store. It caches immutable source
// data only; per-session pipeline state never goes through here. Misses and
// cache trouble fall through to the inner source, and a missing symbol is
// not negatively cached.
type CachedSeriesSource struct {
	inner drepo.SeriesSource
	cache pkgcache.Service
	ttl   time.Duration
}

// NewCachedSeriesSource wraps a source with a cache layer.
func NewCachedSeriesSource(inner drepo.SeriesSource, cache pkgcache.Service, ttl time.Duration) *CachedSeriesSource {
	return &CachedSeriesSource{inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedSeriesSource) Load(ctx context.Context, symbol string) ([]models.Point, error) {
	key := pkgcache.GenerateKey("series", symbol)

	var raw string
	if err := s.cache.Get(ctx, key, &raw); err == nil {
		var points []models.Point
		if err := json.Unmarshal([]byte(raw), &points); err == nil && len(points) > 0 {
			return points, nil
		}
	}

	points, err := s.inner.Load(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(points); err == nil {
		_ = s.cache.Set(ctx, key, string(data), s.ttl)
	}
	return points, nil
}

var _ drepo.SeriesSource = (*CachedSeriesSource)(nil)
