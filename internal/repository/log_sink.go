package repository

import (
	"context"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
	applogger "github.com/MarkCoder7/pktvisor/pkg/logger"
)

// LogSink records every publish through the structured logger. It is always
// attached and doubles as the error surface when no client is connected.
type LogSink struct {
	l *applogger.Logger
}

// NewLogSink creates a sink over the given logger.
func NewLogSink(l *applogger.Logger) *LogSink {
	return &LogSink{l: l}
}

func (s *LogSink) PublishDataset(_ context.Context, ds *models.PairDataset) error {
	s.l.Info("dataset published",
		applogger.String("symbol1", ds.Sym1),
		applogger.String("symbol2", ds.Sym2),
		applogger.Int("rows", ds.Len()),
	)
	return nil
}

func (s *LogSink) PublishStats(_ context.Context, st *models.Statistics) error {
	s.l.Debug("stats published",
		applogger.String("symbol1", st.Sym1),
		applogger.String("symbol2", st.Sym2),
		applogger.Int("count", st.Count()),
	)
	return nil
}

func (s *LogSink) PublishOptions(_ context.Context, opts models.SlotOptions) error {
	s.l.Debug("slot options published",
		applogger.Int("slot", int(opts.Slot)),
		applogger.String("value", opts.Value),
		applogger.Strings("allowed", opts.Allowed),
	)
	return nil
}

func (s *LogSink) PublishError(_ context.Context, err error) error {
	s.l.Error("pipeline error", applogger.Error(err))
	return nil
}

var _ drepo.Sink = (*LogSink)(nil)
