package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
)

func TestSeriesStoreMemoizes(t *testing.T) {
	src := newFakeSource()
	src.add("AAPL", []int{1, 2, 3}, []float64{10, 12, 11})
	store := NewSeriesStore(src, noopMetrics{})

	first, err := store.Get(context.Background(), "AAPL")
	require.NoError(t, err)
	second, err := store.Get(context.Background(), "AAPL")
	require.NoError(t, err)

	require.Same(t, first, second, "second get must return the cached instance")
	require.Equal(t, 1, src.loads["AAPL"], "source must be read at most once per symbol")
	require.Equal(t, 3, first.Len())
}

func TestSeriesStoreMissingSeries(t *testing.T) {
	src := newFakeSource()
	store := NewSeriesStore(src, noopMetrics{})

	_, err := store.Get(context.Background(), "NOPE")
	require.ErrorIs(t, err, models.ErrMissingSeries)

	// a failed load caches nothing, so the source is consulted again
	_, err = store.Get(context.Background(), "NOPE")
	require.ErrorIs(t, err, models.ErrMissingSeries)
	require.Equal(t, 2, src.loads["NOPE"])
}

func TestSeriesStoreEmptySourceResult(t *testing.T) {
	src := newFakeSource()
	src.data["EMPTY"] = nil
	store := NewSeriesStore(src, noopMetrics{})

	_, err := store.Get(context.Background(), "EMPTY")
	if !errors.Is(err, models.ErrMissingSeries) {
		t.Fatalf("expected missing series, got %v", err)
	}
}
