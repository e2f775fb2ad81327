package repository

import (
	"context"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
)

// SeriesSource reads all observations for one symbol from the backing store.
// Implementations return models.ErrMissingSeries (wrapped) when the store has
// no rows for the symbol, never an empty slice.
type SeriesSource interface {
	Load(ctx context.Context, symbol string) ([]models.Point, error)
}

// Sink receives pipeline outputs. Implementations are presentation
// collaborators: chart transports, text panes, topics, logs.
type Sink interface {
	PublishDataset(ctx context.Context, ds *models.PairDataset) error
	PublishStats(ctx context.Context, st *models.Statistics) error
	PublishOptions(ctx context.Context, opts models.SlotOptions) error
	PublishError(ctx context.Context, err error) error
}

// Metrics records pipeline instrumentation.
type Metrics interface {
	RecordSeriesLoad(symbol string, seconds float64)
	RecordCacheHit(symbol string)
	RecordRebuild(sym1, sym2 string, rows int, seconds float64)
	RecordSummarize(rows int, seconds float64)
	RecordError(kind string)
}
