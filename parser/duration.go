// Package parser converts fetched classification pages into normalized
// result rows.
package parser

import (
	"strconv"
	"strings"
)

// ParseDuration converts a formatted time string to seconds. Accepted
// shapes are "H:MM:SS", "MM:SS", and a bare numeric token. The
// placeholder "-", the empty string, and anything unparseable report
// ok=false. Fractional seconds are preserved.
func ParseDuration(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, false
	}

	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, false
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, false
		}
		sec, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0, false
		}
		return float64(h)*3600 + float64(m)*60 + sec, true
	case 2:
		m, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, false
		}
		sec, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, false
		}
		return float64(m)*60 + sec, true
	case 1:
		sec, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, false
		}
		return sec, true
	default:
		return 0, false
	}
}
