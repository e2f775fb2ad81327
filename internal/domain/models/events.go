package models

// Slot identifies one of the two symbol choosers.
type Slot int

const (
	Slot1 Slot = 1
	Slot2 Slot = 2
)

// Valid reports whether the slot is one of the two known choosers.
func (s Slot) Valid() bool { return s == Slot1 || s == Slot2 }

// Event is an immutable notification consumed by the update orchestrator.
type Event interface {
	isEvent()
}

// SymbolChanged reports that one chooser slot now holds a new symbol.
type SymbolChanged struct {
	Slot   Slot
	Symbol string
}

// SelectionChanged reports a new brushed selection: row positions into the
// currently published dataset. Empty means the entire dataset.
type SelectionChanged struct {
	Rows []int
}

func (SymbolChanged) isEvent()    {}
func (SelectionChanged) isEvent() {}

// SlotOptions carries a slot's current value together with the symbols it may
// switch to, so choosers stay mutually exclusive.
type SlotOptions struct {
	Slot    Slot     `json:"slot"`
	Value   string   `json:"value"`
	Allowed []string `json:"allowed"`
}
