package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
	applogger "github.com/MarkCoder7/pktvisor/pkg/logger"
)

// CHSeriesSource reads symbol series out of a ClickHouse daily table.
type CHSeriesSource struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

// NewCHSeriesSource creates a source over the given table.
func NewCHSeriesSource(db *sql.DB, table string) *CHSeriesSource {
	return &CHSeriesSource{db: db, table: table}
}

// SetLogger injects a structured logger.
func (s *CHSeriesSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHSeriesSource) Load(ctx context.Context, symbol string) ([]models.Point, error) {
	start := time.Now()
	q := fmt.Sprintf("SELECT d, c FROM %s WHERE symbol = ? ORDER BY d ASC", s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse series query error",
				applogger.String("table", s.table),
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	out := make([]models.Point, 0, 1024)
	for rows.Next() {
		var p models.Point
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("table %s symbol %s: %w", s.table, symbol, models.ErrMissingSeries)
	}

	if s.l != nil {
		s.l.Info("clickhouse series loaded",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

var _ drepo.SeriesSource = (*CHSeriesSource)(nil)
