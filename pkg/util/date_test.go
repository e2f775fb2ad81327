package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeDaily(t *testing.T) {
	got, ok := ParseTime("2024-01-15")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if got := ParseTimeDefault("", def); !got.Equal(def) {
		t.Fatalf("expected default")
	}
	if got := ParseTimeDefault("garbage", def); !got.Equal(def) {
		t.Fatalf("expected default on invalid input")
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2024, 1, 15, 13, 45, 12, 999, time.UTC)
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := TruncateToDay(in); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
