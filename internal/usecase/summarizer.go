package usecase

import (
	"math"
	"sort"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
)

// Summarize computes descriptive statistics over the view's four columns.
// Pure: the same rows always produce the identical summary. A zero-row view
// yields count 0 and NaN for everything else.
func Summarize(view models.DatasetView) models.Statistics {
	st := models.Statistics{
		Sym1: view.Dataset.Sym1,
		Sym2: view.Dataset.Sym2,
	}

	n := view.Len()
	cols := [4][]float64{}
	for c := range cols {
		cols[c] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		r := view.At(i)
		cols[0][i] = r.V1
		cols[1][i] = r.V2
		cols[2][i] = r.R1
		cols[3][i] = r.R2
	}

	for c, vals := range cols {
		st.Columns[c] = describe(vals)
	}
	return st
}

func describe(vals []float64) models.ColumnStats {
	n := len(vals)
	cs := models.ColumnStats{Count: n}
	if n == 0 {
		nan := math.NaN()
		cs.Mean, cs.Std, cs.Min, cs.Q25, cs.Q50, cs.Q75, cs.Max = nan, nan, nan, nan, nan, nan, nan
		return cs
	}

	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	cs.Mean = sum / float64(n)

	// sample standard deviation; undefined for a single observation
	if n < 2 {
		cs.Std = math.NaN()
	} else {
		sq := 0.0
		for _, v := range vals {
			d := v - cs.Mean
			sq += d * d
		}
		cs.Std = math.Sqrt(sq / float64(n-1))
	}

	sorted := make([]float64, n)
	copy(sorted, vals)
	sort.Float64s(sorted)

	cs.Min = sorted[0]
	cs.Max = sorted[n-1]
	cs.Q25 = quantile(sorted, 0.25)
	cs.Q50 = quantile(sorted, 0.50)
	cs.Q75 = quantile(sorted, 0.75)
	return cs
}

// quantile interpolates linearly between the two nearest order statistics.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
