package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
)

var testUniverse = []string{"AAPL", "GOOG", "INTC", "BRCM", "YHOO"}

func newTestOrchestrator(t *testing.T, sinks ...drepo.Sink) (*UpdateOrchestrator, *fakeSource) {
	t.Helper()
	src := newFakeSource()
	src.add("AAPL", []int{1, 2, 3, 4}, []float64{10, 12, 11, 13})
	src.add("GOOG", []int{1, 2, 3, 4}, []float64{20, 19, 22, 24})
	src.add("INTC", []int{2, 3, 4, 5}, []float64{5, 6, 4, 7})
	src.add("YHOO", []int{20, 21}, []float64{30, 31})

	o := NewUpdateOrchestrator(testUniverse, "AAPL", "GOOG",
		newTestBuilder(src), noopMetrics{}, testLogger(), sinks...)
	return o, src
}

// seed builds the initial pair the way Run does before consuming events.
func seed(t *testing.T, o *UpdateOrchestrator) State {
	t.Helper()
	st, effects := o.Apply(context.Background(), State{Sym2: "GOOG"},
		models.SymbolChanged{Slot: models.Slot1, Symbol: "AAPL"})
	require.NotEmpty(t, effects)
	require.NotNil(t, st.Dataset)
	return st
}

func TestSymbolChangedRebuildsAndResetsSelection(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	st := seed(t, o)

	// brush something first
	st, _ = o.Apply(context.Background(), st, models.SelectionChanged{Rows: []int{0, 1}})
	require.Equal(t, []int{0, 1}, st.Selection)

	next, effects := o.Apply(context.Background(), st, models.SymbolChanged{Slot: models.Slot2, Symbol: "INTC"})
	require.Equal(t, "AAPL", next.Sym1)
	require.Equal(t, "INTC", next.Sym2)
	require.Nil(t, next.Selection, "selection must be reset on identifier change")
	require.NotSame(t, st.Dataset, next.Dataset)
	require.Equal(t, next.Dataset.Len(), next.Stats.Count(), "stats cover the full new dataset")

	var gotDataset, gotStats, gotOptions bool
	for _, eff := range effects {
		switch e := eff.(type) {
		case PublishDataset:
			gotDataset = true
			require.Equal(t, "INTC", e.Dataset.Sym2)
		case PublishStats:
			gotStats = true
		case PublishOptions:
			gotOptions = true
			require.Equal(t, models.Slot1, e.Options.Slot, "the other slot's options are republished")
			require.NotContains(t, e.Options.Allowed, "INTC")
		}
	}
	require.True(t, gotDataset && gotStats && gotOptions)
}

func TestMutualExclusion(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	st := seed(t, o)

	st, _ = o.Apply(context.Background(), st, models.SymbolChanged{Slot: models.Slot1, Symbol: "INTC"})
	require.NotContains(t, o.AllowedFor(st, models.Slot2), "INTC")
	require.Contains(t, o.AllowedFor(st, models.Slot2), "AAPL")
	require.NotContains(t, o.AllowedFor(st, models.Slot1), "GOOG")
}

func TestSameSymbolEventLeavesStateIntact(t *testing.T) {
	sink := &recordingSink{}
	o, _ := newTestOrchestrator(t, sink)
	st := seed(t, o)

	next, effects := o.Apply(context.Background(), st, models.SymbolChanged{Slot: models.Slot1, Symbol: "GOOG"})
	require.Equal(t, st, next, "invariant violation must not move the state")
	require.Len(t, effects, 1)
	perr, ok := effects[0].(PublishError)
	require.True(t, ok)
	require.ErrorIs(t, perr.Err, models.ErrSameSymbol)
}

func TestSelectionChangedRepublishesStatsOnly(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	st := seed(t, o)

	next, effects := o.Apply(context.Background(), st, models.SelectionChanged{Rows: []int{1}})
	require.Same(t, st.Dataset, next.Dataset, "the dataset itself is untouched")
	require.Len(t, effects, 1)
	ps, ok := effects[0].(PublishStats)
	require.True(t, ok)
	require.Equal(t, 1, ps.Stats.Count())
}

func TestSelectionMeanWithinFullBounds(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	st := seed(t, o)
	full := st.Stats

	next, _ := o.Apply(context.Background(), st, models.SelectionChanged{Rows: []int{0, 2}})
	require.Equal(t, 2, next.Stats.Count())
	for c := range next.Stats.Columns {
		require.GreaterOrEqual(t, next.Stats.Columns[c].Mean, full.Columns[c].Min)
		require.LessOrEqual(t, next.Stats.Columns[c].Mean, full.Columns[c].Max)
	}
}

func TestStaleSelectionIsAnOrderingBug(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	st := seed(t, o)

	// AAPL/GOOG joins to 3 rows; AAPL/INTC joins to 2. A selection sized for
	// the old dataset arriving after the rebuild means the event source broke
	// its ordering guarantee: production drops the out-of-range tail, tests
	// flag it.
	oldSize := st.Dataset.Len()
	st, _ = o.Apply(context.Background(), st, models.SymbolChanged{Slot: models.Slot2, Symbol: "INTC"})
	require.Less(t, st.Dataset.Len(), oldSize)

	stale := []int{0, 1, 2} // valid against the old dataset only
	next, _ := o.Apply(context.Background(), st, models.SelectionChanged{Rows: stale})
	require.Equal(t, st.Dataset.Len(), next.Stats.Count(),
		"out-of-range positions from a stale selection must be ignored, not summarized")
}

func TestEmptyJoinPublishesDegenerateResult(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	st := seed(t, o)

	// YHOO shares no dates with AAPL
	next, effects := o.Apply(context.Background(), st, models.SymbolChanged{Slot: models.Slot2, Symbol: "YHOO"})
	require.NotNil(t, next.Dataset)
	require.Zero(t, next.Dataset.Len())
	require.Zero(t, next.Stats.Count())

	for _, eff := range effects {
		_, isErr := eff.(PublishError)
		require.False(t, isErr, "an empty join is a valid result, not an error")
	}
}

func TestMissingSeriesKeepsPublishedState(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	st := seed(t, o)

	next, effects := o.Apply(context.Background(), st, models.SymbolChanged{Slot: models.Slot2, Symbol: "BRCM"})
	require.Equal(t, st, next, "a failed load must not corrupt previously published state")
	require.Len(t, effects, 1)
	perr, ok := effects[0].(PublishError)
	require.True(t, ok)
	require.ErrorIs(t, perr.Err, models.ErrMissingSeries)
}

func TestRunInitialPublish(t *testing.T) {
	sink := &recordingSink{}
	o, _ := newTestOrchestrator(t, sink)

	events := make(chan models.Event)
	close(events)
	require.NoError(t, o.Run(context.Background(), events))

	require.Len(t, sink.datasets, 1)
	require.Len(t, sink.stats, 1)
	require.Len(t, sink.options, 2, "both slots get their options on startup")
	require.Equal(t, sink.datasets[0].Len(), sink.stats[0].Count())
}
