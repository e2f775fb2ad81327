package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	applogger "github.com/MarkCoder7/pktvisor/pkg/logger"
)

// fakeSource serves fixed points per symbol and counts source reads.
type fakeSource struct {
	data  map[string][]models.Point
	loads map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		data:  make(map[string][]models.Point),
		loads: make(map[string]int),
	}
}

func (f *fakeSource) add(symbol string, days []int, values []float64) {
	points := make([]models.Point, len(days))
	for i, d := range days {
		points[i] = models.Point{Date: day(d), Value: values[i]}
	}
	f.data[symbol] = points
}

func (f *fakeSource) Load(_ context.Context, symbol string) ([]models.Point, error) {
	f.loads[symbol]++
	points, ok := f.data[symbol]
	if !ok {
		return nil, fmt.Errorf("fake source %q: %w", symbol, models.ErrMissingSeries)
	}
	return points, nil
}

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

// noopMetrics satisfies the metrics interface for tests.
type noopMetrics struct{}

func (noopMetrics) RecordSeriesLoad(string, float64)          {}
func (noopMetrics) RecordCacheHit(string)                     {}
func (noopMetrics) RecordRebuild(string, string, int, float64) {}
func (noopMetrics) RecordSummarize(int, float64)              {}
func (noopMetrics) RecordError(string)                        {}

// recordingSink captures every publish for assertions.
type recordingSink struct {
	datasets []*models.PairDataset
	stats    []*models.Statistics
	options  []models.SlotOptions
	errs     []error
}

func (s *recordingSink) PublishDataset(_ context.Context, ds *models.PairDataset) error {
	s.datasets = append(s.datasets, ds)
	return nil
}

func (s *recordingSink) PublishStats(_ context.Context, st *models.Statistics) error {
	s.stats = append(s.stats, st)
	return nil
}

func (s *recordingSink) PublishOptions(_ context.Context, opts models.SlotOptions) error {
	s.options = append(s.options, opts)
	return nil
}

func (s *recordingSink) PublishError(_ context.Context, err error) error {
	s.errs = append(s.errs, err)
	return nil
}

func testLogger() *applogger.Logger {
	l, _ := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	return l
}
