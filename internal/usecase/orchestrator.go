package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
	applogger "github.com/MarkCoder7/pktvisor/pkg/logger"
)

// State is the orchestrator's whole mutable world: the chosen pair, the
// dataset built for it, the active selection and the summary last computed.
// Transitions replace it wholesale; nothing outside the orchestrator mutates it.
type State struct {
	Sym1      string
	Sym2      string
	Dataset   *models.PairDataset
	Selection []int
	Stats     models.Statistics
}

// Effect is a publish instruction produced by a transition, executed against
// the registered sinks after the new state is in place.
type Effect interface {
	isEffect()
}

// PublishDataset pushes a rebuilt dataset to chart sinks.
type PublishDataset struct{ Dataset *models.PairDataset }

// PublishStats pushes a recomputed summary to text sinks.
type PublishStats struct{ Stats *models.Statistics }

// PublishOptions pushes a slot's value and allowed symbol set.
type PublishOptions struct{ Options models.SlotOptions }

// PublishError surfaces a failed transition without touching published state.
type PublishError struct{ Err error }

func (PublishDataset) isEffect() {}
func (PublishStats) isEffect()   {}
func (PublishOptions) isEffect() {}
func (PublishError) isEffect()   {}

// UpdateOrchestrator reacts to symbol and selection events, keeps the
// pipeline outputs consistent and publishes them. One orchestrator serves one
// session; its Run loop processes events strictly one at a time.
type UpdateOrchestrator struct {
	universe []string
	builder  *PairDatasetBuilder
	sinks    []drepo.Sink
	metrics  drepo.Metrics
	log      *applogger.Logger
	state    State
}

// NewUpdateOrchestrator creates an orchestrator over a fixed symbol universe
// with the given starting pair.
func NewUpdateOrchestrator(
	universe []string,
	sym1, sym2 string,
	builder *PairDatasetBuilder,
	metrics drepo.Metrics,
	log *applogger.Logger,
	sinks ...drepo.Sink,
) *UpdateOrchestrator {
	return &UpdateOrchestrator{
		universe: universe,
		builder:  builder,
		sinks:    sinks,
		metrics:  metrics,
		log:      log,
		state:    State{Sym1: sym1, Sym2: sym2},
	}
}

// State returns the current state. Intended for the Run goroutine and tests.
func (o *UpdateOrchestrator) State() State { return o.state }

// AllowedFor returns the symbols a slot may switch to: the universe minus the
// other slot's current value.
func (o *UpdateOrchestrator) AllowedFor(st State, slot models.Slot) []string {
	exclude := st.Sym2
	if slot == models.Slot2 {
		exclude = st.Sym1
	}
	out := make([]string, 0, len(o.universe))
	for _, s := range o.universe {
		if s != exclude {
			out = append(out, s)
		}
	}
	return out
}

// Apply is the single state-transition function: it consumes one immutable
// event and returns the next state plus the publishes it calls for. It never
// touches a sink itself, so it is testable without any presentation
// dependency.
func (o *UpdateOrchestrator) Apply(ctx context.Context, st State, ev models.Event) (State, []Effect) {
	switch e := ev.(type) {
	case models.SymbolChanged:
		return o.applySymbolChanged(ctx, st, e)
	case models.SelectionChanged:
		return o.applySelectionChanged(st, e)
	default:
		return st, nil
	}
}

func (o *UpdateOrchestrator) applySymbolChanged(ctx context.Context, st State, e models.SymbolChanged) (State, []Effect) {
	if !e.Slot.Valid() || !o.inUniverse(e.Symbol) {
		o.metrics.RecordError("symbol_event")
		return st, []Effect{PublishError{Err: errors.New("unknown slot or symbol")}}
	}

	next := st
	if e.Slot == models.Slot1 {
		next.Sym1 = e.Symbol
	} else {
		next.Sym2 = e.Symbol
	}
	// The choosers exclude each other's value, so equal slots mean the event
	// source violated that invariant. Published state stays as it was.
	if next.Sym1 == next.Sym2 {
		o.metrics.RecordError("same_symbol")
		return st, []Effect{PublishError{Err: models.ErrSameSymbol}}
	}

	other := models.Slot2
	if e.Slot == models.Slot2 {
		other = models.Slot1
	}

	ds, err := o.builder.Build(ctx, next.Sym1, next.Sym2)
	switch {
	case errors.Is(err, models.ErrEmptyJoin):
		// Degenerate but valid: empty dataset, count-zero summary.
		ds = &models.PairDataset{Sym1: next.Sym1, Sym2: next.Sym2}
	case err != nil:
		o.metrics.RecordError("rebuild")
		return st, []Effect{PublishError{Err: err}}
	}

	next.Dataset = ds
	next.Selection = nil
	stats := Summarize(ApplySelection(ds, nil))
	next.Stats = stats

	return next, []Effect{
		PublishDataset{Dataset: ds},
		PublishStats{Stats: &stats},
		PublishOptions{Options: models.SlotOptions{
			Slot:    other,
			Value:   o.slotValue(next, other),
			Allowed: o.AllowedFor(next, other),
		}},
	}
}

func (o *UpdateOrchestrator) applySelectionChanged(st State, e models.SelectionChanged) (State, []Effect) {
	if st.Dataset == nil {
		return st, nil
	}

	start := time.Now()
	next := st
	next.Selection = e.Rows
	stats := Summarize(ApplySelection(st.Dataset, e.Rows))
	next.Stats = stats
	o.metrics.RecordSummarize(stats.Count(), time.Since(start).Seconds())

	// Only the summary changes; the dataset is untouched.
	return next, []Effect{PublishStats{Stats: &stats}}
}

// Run drains events until the channel closes or the context ends. The first
// thing it does is publish the initial pair so sinks are never empty.
func (o *UpdateOrchestrator) Run(ctx context.Context, events <-chan models.Event) error {
	st, effects := o.applySymbolChanged(ctx, State{Sym2: o.state.Sym2},
		models.SymbolChanged{Slot: models.Slot1, Symbol: o.state.Sym1})
	o.state = st
	o.dispatch(ctx, effects)
	// The initial publish above covers slot 2's options; slot 1 still needs its own.
	o.dispatch(ctx, []Effect{PublishOptions{Options: models.SlotOptions{
		Slot:    models.Slot1,
		Value:   o.state.Sym1,
		Allowed: o.AllowedFor(o.state, models.Slot1),
	}}})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			o.state, effects = o.Apply(ctx, o.state, ev)
			o.dispatch(ctx, effects)
		}
	}
}

func (o *UpdateOrchestrator) dispatch(ctx context.Context, effects []Effect) {
	for _, eff := range effects {
		for _, sink := range o.sinks {
			var err error
			switch e := eff.(type) {
			case PublishDataset:
				err = sink.PublishDataset(ctx, e.Dataset)
			case PublishStats:
				err = sink.PublishStats(ctx, e.Stats)
			case PublishOptions:
				err = sink.PublishOptions(ctx, e.Options)
			case PublishError:
				err = sink.PublishError(ctx, e.Err)
			}
			if err != nil {
				o.metrics.RecordError("publish")
				o.log.Warn("sink publish error", applogger.Error(err))
			}
		}
	}
}

func (o *UpdateOrchestrator) inUniverse(symbol string) bool {
	for _, s := range o.universe {
		if s == symbol {
			return true
		}
	}
	return false
}

func (o *UpdateOrchestrator) slotValue(st State, slot models.Slot) string {
	if slot == models.Slot1 {
		return st.Sym1
	}
	return st.Sym2
}
