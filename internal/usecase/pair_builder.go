package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
)

// PairDatasetBuilder joins two cached series into one aligned dataset with
// first-difference return columns. Build(a,b) and Build(b,a) produce the same
// rows with level/return roles swapped; nothing in the join depends on
// argument order beyond column labeling.
type PairDatasetBuilder struct {
	store   *SeriesStore
	metrics drepo.Metrics
}

// NewPairDatasetBuilder creates a builder over the given store.
func NewPairDatasetBuilder(store *SeriesStore, metrics drepo.Metrics) *PairDatasetBuilder {
	return &PairDatasetBuilder{store: store, metrics: metrics}
}

// Build fetches both series, inner-joins them on date and attaches returns.
// Rows come out ascending by date. Any date where either series cannot supply
// both a level and a return is dropped; in particular the earliest common
// date never survives. Returns models.ErrEmptyJoin when no rows remain.
func (b *PairDatasetBuilder) Build(ctx context.Context, sym1, sym2 string) (*models.PairDataset, error) {
	if sym1 == sym2 {
		return nil, fmt.Errorf("build pair %q/%q: %w", sym1, sym2, models.ErrSameSymbol)
	}

	start := time.Now()
	s1, err := b.store.Get(ctx, sym1)
	if err != nil {
		return nil, err
	}
	s2, err := b.store.Get(ctx, sym2)
	if err != nil {
		return nil, err
	}

	ds := &models.PairDataset{Sym1: sym1, Sym2: sym2, Rows: join(s1, s2)}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("build pair %q/%q: %w", sym1, sym2, models.ErrEmptyJoin)
	}

	b.metrics.RecordRebuild(sym1, sym2, ds.Len(), time.Since(start).Seconds())
	return ds, nil
}

// join merges two date-sorted series. A return at position i of a series is
// Value[i]-Value[i-1] against that series' own previous date, so it is
// undefined at position 0 regardless of what the other series holds.
func join(s1, s2 *models.TimeSeries) []models.PairRow {
	rows := make([]models.PairRow, 0, minInt(s1.Len(), s2.Len()))

	i, j := 0, 0
	for i < s1.Len() && j < s2.Len() {
		d1, d2 := s1.Points[i].Date, s2.Points[j].Date
		switch {
		case d1.Before(d2):
			i++
		case d2.Before(d1):
			j++
		default:
			if i > 0 && j > 0 {
				rows = append(rows, models.PairRow{
					Date: d1,
					V1:   s1.Points[i].Value,
					V2:   s2.Points[j].Value,
					R1:   s1.Points[i].Value - s1.Points[i-1].Value,
					R2:   s2.Points[j].Value - s2.Points[j-1].Value,
				})
			}
			i++
			j++
		}
	}
	return rows
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
