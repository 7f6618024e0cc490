package util

import (
	"math"
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, a bare date, and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// PeriodStart returns the start of a lookback period ending at `end`.
// Recognized periods: 1d, 5d, 1w, 1mo, 3mo, 6mo, 1y, 2y, 5y. Unrecognized
// input falls back to one month.
func PeriodStart(end time.Time, period string) time.Time {
	switch period {
	case "1d":
		return end.AddDate(0, 0, -1)
	case "5d":
		return end.AddDate(0, 0, -5)
	case "1w":
		return end.AddDate(0, 0, -7)
	case "1mo":
		return end.AddDate(0, -1, 0)
	case "3mo":
		return end.AddDate(0, -3, 0)
	case "6mo":
		return end.AddDate(0, -6, 0)
	case "1y":
		return end.AddDate(-1, 0, 0)
	case "2y":
		return end.AddDate(-2, 0, 0)
	case "5y":
		return end.AddDate(-5, 0, 0)
	default:
		return end.AddDate(0, -1, 0)
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
