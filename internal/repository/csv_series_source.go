package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
)

const csvDateLayout = "2006-01-02"

// CSVSeriesSource reads per-symbol daily files from a data directory.
// Each file is table_<symbol>.csv with headerless rows
// date,foo,open,high,low,close,volume; only date and close are used.
type CSVSeriesSource struct {
	dir string
}

// NewCSVSeriesSource creates a source over the given directory.
func NewCSVSeriesSource(dir string) *CSVSeriesSource {
	return &CSVSeriesSource{dir: dir}
}

func (s *CSVSeriesSource) Load(ctx context.Context, symbol string) ([]models.Point, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("table_%s.csv", strings.ToLower(symbol)))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, models.ErrMissingSeries)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return readDailyCSV(f)
}

func readDailyCSV(r io.Reader) ([]models.Point, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	points := make([]models.Point, 0, 256)
	seen := make(map[time.Time]bool)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(rec) < 6 {
			return nil, fmt.Errorf("csv row has %d columns, want at least 6", len(rec))
		}

		d, err := time.Parse(csvDateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", rec[0], err)
		}
		v, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", rec[5], err)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		points = append(points, models.Point{Date: d, Value: v})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

var _ drepo.SeriesSource = (*CSVSeriesSource)(nil)
