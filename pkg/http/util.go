package http

import (
	"time"

	xutil "github.com/MarkCoder7/pktvisor/pkg/util"
)

// ParseIntDefault parses s as an int, returning def when empty or invalid.
func ParseIntDefault(s string, def int) int { return xutil.ParseIntDefault(s, def) }

// ParseTime accepts a daily date, RFC3339, or unix seconds.
func ParseTime(s string) (time.Time, bool) { return xutil.ParseTime(s) }

// ParseTimeDefault parses time or returns def if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time { return xutil.ParseTimeDefault(s, def) }
