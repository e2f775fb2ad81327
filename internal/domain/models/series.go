package models

import "time"

// Point is a single dated observation of a series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TimeSeries holds the closing values of one symbol, ordered by date.
// Dates are strictly increasing with no duplicates.
type TimeSeries struct {
	Symbol string  `json:"symbol"`
	Points []Point `json:"points"`
}

// Len returns the number of observations.
func (s *TimeSeries) Len() int { return len(s.Points) }
