package services

import (
	"math"
	"testing"
)

func TestPopulationStdDev(t *testing.T) {
	t.Parallel()

	if got := populationStdDev(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %f", got)
	}
	if got := populationStdDev([]int{28, 28, 28}); got != 0 {
		t.Fatalf("expected 0 for constant input, got %f", got)
	}

	// Mean 31, squared deviations 9+9+9+81, variance 27.
	got := populationStdDev([]int{28, 28, 28, 40})
	want := math.Sqrt(27)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestVariabilityLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		stdDev float64
		want   string
	}{
		{0, VariabilityVeryStable},
		{1.49, VariabilityVeryStable},
		{1.5, VariabilityStable},
		{3.49, VariabilityStable},
		{3.5, VariabilityVariable},
		{5.99, VariabilityVariable},
		{6, VariabilityHighlyVariable},
		{12, VariabilityHighlyVariable},
	}
	for _, testCase := range cases {
		if got := VariabilityLabel(testCase.stdDev); got != testCase.want {
			t.Fatalf("VariabilityLabel(%v): expected %q, got %q", testCase.stdDev, testCase.want, got)
		}
	}
}

func TestBuildCycleOverview(t *testing.T) {
	t.Parallel()

	days := append(dayRun("2024-01-01", "2024-01-05"), dayRun("2024-01-29", "2024-02-01")...)
	days = append(days, dayRun("2024-02-26", "2024-03-01")...)
	periods := DerivePeriods(days)

	overview := BuildCycleOverview(periods, NotesByDate{}, DefaultCycleSettings())

	if overview.AverageCycleLength != 28 {
		t.Fatalf("expected average cycle 28, got %d", overview.AverageCycleLength)
	}
	// Period lengths 5, 4, 5: mean 4.67 rounds to 5.
	if overview.AveragePeriodLength != 5 {
		t.Fatalf("expected average period 5, got %d", overview.AveragePeriodLength)
	}
	if overview.ObservedCycles != 2 {
		t.Fatalf("expected 2 observed cycles, got %d", overview.ObservedCycles)
	}
	if overview.CycleLengthStdDev != 0 {
		t.Fatalf("expected zero stddev for identical cycles, got %f", overview.CycleLengthStdDev)
	}
	if overview.VariabilityLabel != VariabilityVeryStable {
		t.Fatalf("expected %q, got %q", VariabilityVeryStable, overview.VariabilityLabel)
	}
}

func TestBuildCycleTable(t *testing.T) {
	t.Parallel()

	days := append(dayRun("2024-01-01", "2024-01-05"), dayRun("2024-01-29", "2024-02-02")...)
	periods := DerivePeriods(days)

	rows := BuildCycleTable(periods, NotesByDate{}, DefaultCycleSettings())

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Oldest first.
	if got := ISODay(rows[0].Start); got != "2024-01-01" {
		t.Fatalf("expected first row 2024-01-01, got %s", got)
	}
	if rows[0].CycleDays != 28 || !rows[0].CycleDaysValid {
		t.Fatalf("expected closed cycle of 28 valid days, got %d valid=%v", rows[0].CycleDays, rows[0].CycleDaysValid)
	}
	if rows[0].BleedDays != 5 {
		t.Fatalf("expected 5 bleed days, got %d", rows[0].BleedDays)
	}
	// The newest cycle has no successor; its length comes from the model.
	if rows[1].CycleDays != 28 {
		t.Fatalf("expected model length for the open cycle, got %d", rows[1].CycleDays)
	}
	if rows[0].Ovulation.ReasonCode != ReasonStandard {
		t.Fatalf("expected standard estimate without evidence, got %s", rows[0].Ovulation.ReasonCode)
	}
}

func TestBuildCycleTable_FlagsImplausibleLength(t *testing.T) {
	t.Parallel()

	days := daysFromISO("2024-01-01", "2024-03-11") // gap 70
	periods := DerivePeriods(days)

	rows := BuildCycleTable(periods, NotesByDate{}, DefaultCycleSettings())

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].CycleDays != 70 {
		t.Fatalf("expected the raw gap reported, got %d", rows[0].CycleDays)
	}
	if rows[0].CycleDaysValid {
		t.Fatalf("expected a 70-day gap to be flagged invalid")
	}
}

func TestBuildCycleTable_Empty(t *testing.T) {
	t.Parallel()

	if rows := BuildCycleTable(nil, NotesByDate{}, DefaultCycleSettings()); len(rows) != 0 {
		t.Fatalf("expected no rows without history, got %d", len(rows))
	}
}
