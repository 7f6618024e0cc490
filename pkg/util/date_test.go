package util

import (
	"strconv"
	"testing"
	"time"
)

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

func TestParseTimeBareDate(t *testing.T) {
	got, ok := ParseTime("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
	if _, ok := ParseTime("not-a-date"); ok {
		t.Fatalf("expected failure for garbage input")
	}
}

func TestPeriodStart(t *testing.T) {
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := PeriodStart(end, "2y"); got.Year() != 2023 {
		t.Fatalf("expected 2023 start, got %v", got)
	}
	if got := PeriodStart(end, "1w"); end.Sub(got) != 7*24*time.Hour {
		t.Fatalf("expected 7 days, got %v", end.Sub(got))
	}
	// unrecognized period falls back to one month
	if got := PeriodStart(end, "bogus"); got.Month() != time.May {
		t.Fatalf("expected May, got %v", got.Month())
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(100.456); got != 100.46 {
		t.Fatalf("expected 100.46, got %v", got)
	}
	if got := Round2(99.994); got != 99.99 {
		t.Fatalf("expected 99.99, got %v", got)
	}
}
