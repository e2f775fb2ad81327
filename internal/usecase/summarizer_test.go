package usecase

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
)

func TestSummarizeKnownValues(t *testing.T) {
	ds := &models.PairDataset{Sym1: "A", Sym2: "B"}
	for i, v := range []float64{1, 2, 3, 4} {
		ds.Rows = append(ds.Rows, models.PairRow{Date: day(i + 1), V1: v, V2: 2 * v, R1: 1, R2: 2})
	}

	st := Summarize(models.DatasetView{Dataset: ds})
	require.Equal(t, 4, st.Count())

	c := st.Columns[0] // A levels: 1 2 3 4
	require.Equal(t, 2.5, c.Mean)
	require.InDelta(t, 1.2909944487, c.Std, 1e-9)
	require.Equal(t, 1.0, c.Min)
	require.Equal(t, 1.75, c.Q25)
	require.Equal(t, 2.5, c.Q50)
	require.Equal(t, 3.25, c.Q75)
	require.Equal(t, 4.0, c.Max)

	// constant returns column: zero spread
	r := st.Columns[2]
	require.Equal(t, 1.0, r.Mean)
	require.Equal(t, 0.0, r.Std)
	require.Equal(t, 1.0, r.Q50)
}

func TestSummarizeEmptyView(t *testing.T) {
	ds := &models.PairDataset{Sym1: "A", Sym2: "B"}

	st := Summarize(models.DatasetView{Dataset: ds})
	require.Equal(t, 0, st.Count())
	for _, c := range st.Columns {
		require.True(t, math.IsNaN(c.Mean))
		require.True(t, math.IsNaN(c.Std))
		require.True(t, math.IsNaN(c.Min))
		require.True(t, math.IsNaN(c.Max))
	}

	// formatting a count-zero summary must not fail
	text := st.Format()
	require.Contains(t, text, "count")
	require.Contains(t, text, "A_returns")
}

func TestSummarizeSingleRow(t *testing.T) {
	ds := testDataset(1)

	st := Summarize(models.DatasetView{Dataset: ds})
	require.Equal(t, 1, st.Count())
	require.Equal(t, 0.0, st.Columns[0].Mean)
	require.True(t, math.IsNaN(st.Columns[0].Std), "sample std is undefined for one observation")
	require.Equal(t, st.Columns[0].Min, st.Columns[0].Max)
}

func TestSummarizeSubsetWithinFullBounds(t *testing.T) {
	ds := testDataset(10)
	full := Summarize(models.DatasetView{Dataset: ds})

	sub := Summarize(ApplySelection(ds, []int{2, 5, 7}))
	require.Equal(t, 3, sub.Count())
	for c := range sub.Columns {
		require.GreaterOrEqual(t, sub.Columns[c].Mean, full.Columns[c].Min)
		require.LessOrEqual(t, sub.Columns[c].Mean, full.Columns[c].Max)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	ds := testDataset(7)
	view := ApplySelection(ds, []int{3, 1, 5})

	first := Summarize(view)
	second := Summarize(view)
	require.Equal(t, first, second)
}

func TestFormatLayout(t *testing.T) {
	ds := testDataset(4)
	st := Summarize(models.DatasetView{Dataset: ds})

	lines := strings.Split(strings.TrimRight(st.Format(), "\n"), "\n")
	require.Len(t, lines, 9, "header plus eight statistic rows")
	require.Contains(t, lines[0], "A")
	require.Contains(t, lines[0], "B_returns")
	require.True(t, strings.HasPrefix(lines[1], "count"))
	require.True(t, strings.HasPrefix(lines[8], "max"))
}
