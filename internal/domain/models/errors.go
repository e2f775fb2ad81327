package models

import "errors"

var (
	// ErrMissingSeries is returned when the backing source holds no data for
	// a symbol. Fatal to the triggering request; nothing partial is cached.
	ErrMissingSeries = errors.New("no series data for symbol")

	// ErrEmptyJoin is returned when two series share no common dates.
	ErrEmptyJoin = errors.New("series share no common dates")

	// ErrSameSymbol is returned when a pair build is attempted with both
	// slots holding the same symbol. The orchestrator's mutual-exclusion
	// rule keeps this from arising in normal operation.
	ErrSameSymbol = errors.New("pair symbols must differ")
)
