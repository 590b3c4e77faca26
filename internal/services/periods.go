package services

import (
	"sort"
	"time"
)

// Period is a maximal run of bleed days where consecutive days are at most one
// day apart. Derived from the bleed-day set on every read, never stored.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) LengthDays() int {
	return DiffDays(p.Start, p.End) + 1
}

// DerivePeriods groups a bleed-day set into periods, newest first.
func DerivePeriods(days []time.Time) []Period {
	sorted := NormalizeBleedDays(days)
	if len(sorted) == 0 {
		return []Period{}
	}

	periods := make([]Period, 0)
	start := sorted[0]
	prev := sorted[0]
	for _, day := range sorted[1:] {
		if DiffDays(prev, day) <= 1 {
			prev = day
			continue
		}
		periods = append(periods, Period{Start: start, End: prev})
		start = day
		prev = day
	}
	periods = append(periods, Period{Start: start, End: prev})

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Start.After(periods[j].Start)
	})
	return periods
}

// PeriodsChronological returns a copy sorted oldest first, the order interval
// and statistics math works in.
func PeriodsChronological(periodsNewestFirst []Period) []Period {
	chronological := make([]Period, 0, len(periodsNewestFirst))
	chronological = append(chronological, periodsNewestFirst...)
	sort.Slice(chronological, func(i, j int) bool {
		return chronological[i].Start.Before(chronological[j].Start)
	})
	return chronological
}
