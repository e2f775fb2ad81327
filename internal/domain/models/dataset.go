package models

import "time"

// PairRow is one aligned observation of two symbols: levels and
// first-difference returns, all defined.
type PairRow struct {
	Date time.Time `json:"date"`
	V1   float64   `json:"t1"`
	V2   float64   `json:"t2"`
	R1   float64   `json:"t1_returns"`
	R2   float64   `json:"t2_returns"`
}

// PairDataset is the inner join of two series on date, augmented with
// per-series returns. Rows are ascending by date; any date for which a level
// or return is undefined in either series is dropped, so the first common
// date never appears.
type PairDataset struct {
	Sym1 string    `json:"symbol1"`
	Sym2 string    `json:"symbol2"`
	Rows []PairRow `json:"rows"`
}

// Len returns the row count.
func (d *PairDataset) Len() int { return len(d.Rows) }

// DatasetView exposes a subset of a dataset's rows without copying them.
// A nil Index means every row in original order.
type DatasetView struct {
	Dataset *PairDataset
	Index   []int
}

// Len returns the number of rows visible through the view.
func (v DatasetView) Len() int {
	if v.Index == nil {
		return len(v.Dataset.Rows)
	}
	return len(v.Index)
}

// At returns the i-th visible row.
func (v DatasetView) At(i int) PairRow {
	if v.Index == nil {
		return v.Dataset.Rows[i]
	}
	return v.Dataset.Rows[v.Index[i]]
}

// DatasetColumns is the column-oriented shape pushed to chart sinks,
// mirroring the row order of the dataset it was built from.
type DatasetColumns struct {
	Symbol1 string      `json:"symbol1"`
	Symbol2 string      `json:"symbol2"`
	Date    []time.Time `json:"date"`
	T1      []float64   `json:"t1"`
	T2      []float64   `json:"t2"`
	T1Ret   []float64   `json:"t1_returns"`
	T2Ret   []float64   `json:"t2_returns"`
}

// Columns converts the dataset to its column-oriented form.
func (d *PairDataset) Columns() DatasetColumns {
	n := len(d.Rows)
	c := DatasetColumns{
		Symbol1: d.Sym1,
		Symbol2: d.Sym2,
		Date:    make([]time.Time, n),
		T1:      make([]float64, n),
		T2:      make([]float64, n),
		T1Ret:   make([]float64, n),
		T2Ret:   make([]float64, n),
	}
	for i, r := range d.Rows {
		c.Date[i] = r.Date
		c.T1[i] = r.V1
		c.T2[i] = r.V2
		c.T1Ret[i] = r.R1
		c.T2Ret[i] = r.R2
	}
	return c
}
