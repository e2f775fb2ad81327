package util

import "strconv"

// ParseIntDefault parses s as an int, returning def when empty or invalid.
func ParseIntDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
