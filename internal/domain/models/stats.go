package models

import (
	"fmt"
	"strings"
)

// ColumnStats is the descriptive summary of one numeric column.
// Every value except Count is NaN when Count is 0; Std is additionally NaN
// when Count is 1 (sample standard deviation).
type ColumnStats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q25   float64 `json:"q25"`
	Q50   float64 `json:"q50"`
	Q75   float64 `json:"q75"`
	Max   float64 `json:"max"`
}

// Statistics summarizes the four columns of a pair dataset view,
// in column order: level 1, level 2, returns 1, returns 2.
type Statistics struct {
	Sym1    string         `json:"symbol1"`
	Sym2    string         `json:"symbol2"`
	Columns [4]ColumnStats `json:"columns"`
}

// Count returns the row count the summary was computed over.
// All four columns always share one count.
func (s *Statistics) Count() int { return s.Columns[0].Count }

// Format renders the summary as a fixed-width text table for display sinks.
func (s *Statistics) Format() string {
	headers := []string{s.Sym1, s.Sym2, s.Sym1 + "_returns", s.Sym2 + "_returns"}
	labels := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-7s", ""))
	for _, h := range headers {
		b.WriteString(fmt.Sprintf("%14s", h))
	}
	b.WriteByte('\n')

	for i, label := range labels {
		b.WriteString(fmt.Sprintf("%-7s", label))
		for _, c := range s.Columns {
			if i == 0 {
				b.WriteString(fmt.Sprintf("%14d", c.Count))
				continue
			}
			v := [...]float64{0, c.Mean, c.Std, c.Min, c.Q25, c.Q50, c.Q75, c.Max}[i]
			b.WriteString(fmt.Sprintf("%14.6f", v))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
