package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
)

// SeriesStore memoizes per-symbol series for its lifetime. The first Get for
// a symbol reads the backing source; later Gets return the identical cached
// value. One store belongs to one dashboard session and all access happens on
// that session's event goroutine, so no locking is needed here.
type SeriesStore struct {
	src     drepo.SeriesSource
	metrics drepo.Metrics
	cache   map[string]*models.TimeSeries
}

// NewSeriesStore creates a store over the given source.
func NewSeriesStore(src drepo.SeriesSource, metrics drepo.Metrics) *SeriesStore {
	return &SeriesStore{
		src:     src,
		metrics: metrics,
		cache:   make(map[string]*models.TimeSeries),
	}
}

// Get returns the series for symbol, loading it on first use.
// A load failure caches nothing, so a later Get retries the source.
func (s *SeriesStore) Get(ctx context.Context, symbol string) (*models.TimeSeries, error) {
	if ts, ok := s.cache[symbol]; ok {
		s.metrics.RecordCacheHit(symbol)
		return ts, nil
	}

	start := time.Now()
	points, err := s.src.Load(ctx, symbol)
	if err != nil {
		s.metrics.RecordError("series_load")
		return nil, fmt.Errorf("load series %q: %w", symbol, err)
	}
	if len(points) == 0 {
		s.metrics.RecordError("series_load")
		return nil, fmt.Errorf("load series %q: %w", symbol, models.ErrMissingSeries)
	}

	ts := &models.TimeSeries{Symbol: symbol, Points: points}
	s.cache[symbol] = ts
	s.metrics.RecordSeriesLoad(symbol, time.Since(start).Seconds())
	return ts, nil
}
