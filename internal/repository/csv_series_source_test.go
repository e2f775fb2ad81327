package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
)

func writeTable(t *testing.T, dir, symbol, body string) {
	t.Helper()
	path := filepath.Join(dir, "table_"+symbol+".csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestCSVSourceLoad(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "aapl",
		"2024-01-03,x,1,1,1,11.5,100\n"+
			"2024-01-01,x,1,1,1,10.0,100\n"+
			"2024-01-02,x,1,1,1,10.5,100\n")

	src := NewCSVSeriesSource(dir)
	points, err := src.Load(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, points, 3)

	// Sorted ascending no matter what order the file keeps.
	for i := 1; i < len(points); i++ {
		require.True(t, points[i-1].Date.Before(points[i].Date))
	}
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), points[0].Date)
	require.Equal(t, 10.0, points[0].Value)
	require.Equal(t, 11.5, points[2].Value)
}

func TestCSVSourceSymbolIsLowercasedInPath(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "goog", "2024-01-01,x,1,1,1,20,100\n")

	src := NewCSVSeriesSource(dir)
	points, err := src.Load(context.Background(), "GOOG")
	require.NoError(t, err)
	require.Len(t, points, 1)
}

func TestCSVSourceDropsDuplicateDates(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "intc",
		"2024-01-01,x,1,1,1,5,100\n"+
			"2024-01-01,x,1,1,1,6,100\n")

	src := NewCSVSeriesSource(dir)
	points, err := src.Load(context.Background(), "INTC")
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, 5.0, points[0].Value, "first occurrence wins")
}

func TestCSVSourceMissingFile(t *testing.T) {
	src := NewCSVSeriesSource(t.TempDir())
	_, err := src.Load(context.Background(), "BRCM")
	require.ErrorIs(t, err, models.ErrMissingSeries)
}

func TestCSVSourceMalformedRows(t *testing.T) {
	dir := t.TempDir()
	src := NewCSVSeriesSource(dir)

	writeTable(t, dir, "bad1", "2024-01-01,x,1\n")
	_, err := src.Load(context.Background(), "BAD1")
	require.Error(t, err)

	writeTable(t, dir, "bad2", "01/02/2024,x,1,1,1,5,100\n")
	_, err = src.Load(context.Background(), "BAD2")
	require.Error(t, err)

	writeTable(t, dir, "bad3", "2024-01-01,x,1,1,1,n/a,100\n")
	_, err = src.Load(context.Background(), "BAD3")
	require.Error(t, err)
}
