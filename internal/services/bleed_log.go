package services

import (
	"sort"
	"time"
)

// Range adds are capped so a swapped year in a date field cannot flood the log.
const maxBleedRangeSpanDays = 400

// NormalizeBleedDays deduplicates and sorts a bleed-day set ascending.
func NormalizeBleedDays(days []time.Time) []time.Time {
	seen := make(map[string]bool, len(days))
	normalized := make([]time.Time, 0, len(days))
	for _, day := range days {
		if day.IsZero() {
			continue
		}
		key := ISODay(day)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, DateOnly(day))
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Before(normalized[j])
	})
	return normalized
}

// FillSmallGaps synthesizes bleed days inside 2–3 day gaps between adjacent
// recorded dates, so one or two forgotten logging days do not split a period.
// Gaps of one day are already contiguous; gaps of four or more days are a real
// boundary between periods and stay open. Idempotent.
func FillSmallGaps(days []time.Time) []time.Time {
	sorted := NormalizeBleedDays(days)
	filled := make([]time.Time, 0, len(sorted))
	for i, current := range sorted {
		filled = append(filled, current)
		if i+1 >= len(sorted) {
			continue
		}
		gap := DiffDays(current, sorted[i+1])
		if gap >= 2 && gap <= 3 {
			for k := 1; k < gap; k++ {
				filled = append(filled, AddDays(current, k))
			}
		}
	}
	return NormalizeBleedDays(filled)
}

// MergeBleedDays unions added days into an existing set and applies gap fill,
// the same way every mutation path (single day, range, import) must.
func MergeBleedDays(existing []time.Time, added ...time.Time) []time.Time {
	merged := make([]time.Time, 0, len(existing)+len(added))
	merged = append(merged, existing...)
	merged = append(merged, added...)
	return FillSmallGaps(merged)
}

// NormalizeDayRange orders a user-supplied from/to pair. A zero endpoint means
// the caller supplied nothing useful; that is a no-op, not an error.
func NormalizeDayRange(from time.Time, to time.Time) (time.Time, time.Time, bool) {
	if from.IsZero() || to.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	start := DateOnly(from)
	end := DateOnly(to)
	if start.After(end) {
		start, end = end, start
	}
	return start, end, true
}

// ExpandDayRange lists every day of [from, to] inclusive, reordering swapped
// endpoints and capping the span.
func ExpandDayRange(from time.Time, to time.Time) []time.Time {
	start, end, ok := NormalizeDayRange(from, to)
	if !ok {
		return nil
	}
	span := clampInt(DiffDays(start, end), 0, maxBleedRangeSpanDays)
	days := make([]time.Time, 0, span+1)
	for i := 0; i <= span; i++ {
		days = append(days, AddDays(start, i))
	}
	return days
}

// RemoveBleedDays drops the given days from the set. No gap fill afterwards:
// removal must be able to split or delete a period.
func RemoveBleedDays(existing []time.Time, removed ...time.Time) []time.Time {
	drop := make(map[string]bool, len(removed))
	for _, day := range removed {
		drop[ISODay(day)] = true
	}
	kept := make([]time.Time, 0, len(existing))
	for _, day := range existing {
		if drop[ISODay(day)] {
			continue
		}
		kept = append(kept, day)
	}
	return NormalizeBleedDays(kept)
}
