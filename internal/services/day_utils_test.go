package services

import (
	"testing"
	"time"
)

func TestDiffDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from string
		to   string
		want int
	}{
		{"2024-03-01", "2024-03-01", 0},
		{"2024-03-01", "2024-03-02", 1},
		{"2024-03-02", "2024-03-01", -1},
		{"2024-02-28", "2024-03-01", 2}, // leap year
		{"2023-12-31", "2024-01-01", 1},
	}
	for _, testCase := range cases {
		got := DiffDays(mustParseDay(testCase.from), mustParseDay(testCase.to))
		if got != testCase.want {
			t.Fatalf("DiffDays(%s, %s): expected %d, got %d", testCase.from, testCase.to, testCase.want, got)
		}
	}
}

func TestDiffDays_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	late := mustParseDay("2024-03-01").Add(23 * time.Hour)
	early := mustParseDay("2024-03-02").Add(1 * time.Hour)
	if got := DiffDays(late, early); got != 1 {
		t.Fatalf("expected calendar distance 1, got %d", got)
	}
}

func TestParseISODay(t *testing.T) {
	t.Parallel()

	day, err := ParseISODay("2024-03-05")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := ISODay(day); got != "2024-03-05" {
		t.Fatalf("expected round trip, got %s", got)
	}

	for _, raw := range []string{"", "05.03.2024", "2024-3-5", "not-a-date"} {
		if _, err := ParseISODay(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestBetweenDays(t *testing.T) {
	t.Parallel()

	start := mustParseDay("2024-03-01")
	end := mustParseDay("2024-03-05")

	if !BetweenDays(mustParseDay("2024-03-01"), start, end) || !BetweenDays(mustParseDay("2024-03-05"), start, end) {
		t.Fatal("expected inclusive bounds")
	}
	if BetweenDays(mustParseDay("2024-03-06"), start, end) {
		t.Fatal("expected day after end to be outside")
	}
	if BetweenDays(mustParseDay("2024-03-03"), end, start) {
		t.Fatal("expected inverted range to match nothing")
	}
	if BetweenDays(mustParseDay("2024-03-03"), time.Time{}, end) {
		t.Fatal("expected zero bound to match nothing")
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want int
	}{
		{28.5, 29},
		{28.49, 28},
		{-28.5, -29},
		{0, 0},
	}
	for _, testCase := range cases {
		if got := roundHalfAwayFromZero(testCase.in); got != testCase.want {
			t.Fatalf("round(%v): expected %d, got %d", testCase.in, testCase.want, got)
		}
	}
}
