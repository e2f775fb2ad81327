package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
)

func newTestBuilder(src *fakeSource) *PairDatasetBuilder {
	return NewPairDatasetBuilder(NewSeriesStore(src, noopMetrics{}), noopMetrics{})
}

func TestBuildDropsFirstDateAndComputesReturns(t *testing.T) {
	src := newFakeSource()
	src.add("A", []int{1, 2, 3}, []float64{10, 12, 11})
	src.add("B", []int{1, 2, 3}, []float64{20, 19, 22})

	ds, err := newTestBuilder(src).Build(context.Background(), "A", "B")
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len(), "first common date has undefined returns and is dropped")

	require.Equal(t, day(2), ds.Rows[0].Date)
	require.Equal(t, 12.0, ds.Rows[0].V1)
	require.Equal(t, 19.0, ds.Rows[0].V2)
	require.Equal(t, 2.0, ds.Rows[0].R1)
	require.Equal(t, -1.0, ds.Rows[0].R2)

	require.Equal(t, day(3), ds.Rows[1].Date)
	require.Equal(t, 11.0, ds.Rows[1].V1)
	require.Equal(t, 22.0, ds.Rows[1].V2)
	require.Equal(t, -1.0, ds.Rows[1].R1)
	require.Equal(t, 3.0, ds.Rows[1].R2)
}

func TestBuildSymmetry(t *testing.T) {
	src := newFakeSource()
	src.add("A", []int{1, 2, 4, 5, 8}, []float64{10, 12, 11, 15, 14})
	src.add("B", []int{2, 4, 5, 6, 8}, []float64{20, 19, 22, 21, 25})

	b := newTestBuilder(src)
	ab, err := b.Build(context.Background(), "A", "B")
	require.NoError(t, err)
	ba, err := b.Build(context.Background(), "B", "A")
	require.NoError(t, err)

	require.Equal(t, ab.Len(), ba.Len())
	for i := range ab.Rows {
		require.Equal(t, ab.Rows[i].Date, ba.Rows[i].Date)
		require.Equal(t, ab.Rows[i].V1, ba.Rows[i].V2)
		require.Equal(t, ab.Rows[i].V2, ba.Rows[i].V1)
		require.Equal(t, ab.Rows[i].R1, ba.Rows[i].R2)
		require.Equal(t, ab.Rows[i].R2, ba.Rows[i].R1)
	}
}

func TestBuildSortedAndDefined(t *testing.T) {
	src := newFakeSource()
	src.add("A", []int{1, 2, 3, 5, 7, 9}, []float64{1, 2, 3, 4, 5, 6})
	src.add("B", []int{2, 3, 4, 5, 9, 10}, []float64{9, 8, 7, 6, 5, 4})

	ds, err := newTestBuilder(src).Build(context.Background(), "A", "B")
	require.NoError(t, err)
	require.NotZero(t, ds.Len())

	for i := 1; i < ds.Len(); i++ {
		require.True(t, ds.Rows[i-1].Date.Before(ds.Rows[i].Date), "dates must be strictly increasing")
	}
}

func TestBuildReturnsUsePreviousOwnDate(t *testing.T) {
	// A has points before the first common date, so the common date's return
	// is defined for A from its own prior point, but B starts at the join.
	src := newFakeSource()
	src.add("A", []int{1, 2, 3}, []float64{5, 7, 10})
	src.add("B", []int{2, 3}, []float64{100, 90})

	ds, err := newTestBuilder(src).Build(context.Background(), "A", "B")
	require.NoError(t, err)

	// day 2 is B's first point, so only day 3 survives
	require.Equal(t, 1, ds.Len())
	require.Equal(t, day(3), ds.Rows[0].Date)
	require.Equal(t, 3.0, ds.Rows[0].R1)
	require.Equal(t, -10.0, ds.Rows[0].R2)
}

func TestBuildEmptyJoin(t *testing.T) {
	src := newFakeSource()
	src.add("A", []int{1, 2, 3}, []float64{10, 12, 11})
	src.add("C", []int{10, 11, 12}, []float64{5, 6, 7})

	_, err := newTestBuilder(src).Build(context.Background(), "A", "C")
	require.ErrorIs(t, err, models.ErrEmptyJoin)
}

func TestBuildRejectsSameSymbol(t *testing.T) {
	src := newFakeSource()
	src.add("A", []int{1, 2}, []float64{1, 2})

	_, err := newTestBuilder(src).Build(context.Background(), "A", "A")
	require.ErrorIs(t, err, models.ErrSameSymbol)
	require.Zero(t, src.loads["A"], "precondition failure must not touch the source")
}

func TestBuildPropagatesMissingSeries(t *testing.T) {
	src := newFakeSource()
	src.add("A", []int{1, 2}, []float64{1, 2})

	_, err := newTestBuilder(src).Build(context.Background(), "A", "GHOST")
	require.ErrorIs(t, err, models.ErrMissingSeries)
}
