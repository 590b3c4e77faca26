package services

import (
	"math"
	"time"
)

const (
	VariabilityVeryStable     = "very stable"
	VariabilityStable         = "relatively stable"
	VariabilityVariable       = "variable"
	VariabilityHighlyVariable = "highly variable"
)

// How many recent periods feed the descriptive statistics and the table.
const statsPeriodLimit = 12

// CycleOverview is the dashboard summary block.
type CycleOverview struct {
	AverageCycleLength  int
	AveragePeriodLength int
	CycleLengthStdDev   float64
	VariabilityLabel    string
	PersonalOffset      int
	ObservedCycles      int
}

// CycleRow is one line of the per-cycle table: up to twelve recent cycles,
// oldest first, each with its estimator verdict.
type CycleRow struct {
	Start          time.Time
	BleedDays      int
	CycleDays      int
	CycleDaysValid bool
	Ovulation      OvulationEstimate
}

// BuildCycleOverview computes the descriptive statistics over recent history.
func BuildCycleOverview(periodsNewestFirst []Period, notes NotesByDate, settings CycleSettings) CycleOverview {
	lengths := TrimmedCycleLengths(periodsNewestFirst)
	averageCycle := AverageCycleLength(periodsNewestFirst, settings.CycleLength)

	recent := periodsNewestFirst
	if len(recent) > statsPeriodLimit {
		recent = recent[:statsPeriodLimit]
	}
	averagePeriod := 0
	if len(recent) > 0 {
		sum := 0
		for _, period := range recent {
			sum += period.LengthDays()
		}
		averagePeriod = roundHalfAwayFromZero(float64(sum) / float64(len(recent)))
	}

	stdDev := populationStdDev(lengths)
	model := BuildCalendarModel(periodsNewestFirst, notes, settings, DefaultForecastCycles)

	return CycleOverview{
		AverageCycleLength:  averageCycle,
		AveragePeriodLength: averagePeriod,
		CycleLengthStdDev:   stdDev,
		VariabilityLabel:    VariabilityLabel(stdDev),
		PersonalOffset:      model.PersonalOffset,
		ObservedCycles:      len(lengths),
	}
}

// BuildCycleTable reports up to twelve chronological cycles with bleed length,
// cycle length (flagged invalid outside the plausible window), and the
// estimator output for each.
func BuildCycleTable(periodsNewestFirst []Period, notes NotesByDate, settings CycleSettings) []CycleRow {
	if len(periodsNewestFirst) == 0 {
		return []CycleRow{}
	}

	model := BuildCalendarModel(periodsNewestFirst, notes, settings, DefaultForecastCycles)

	recent := periodsNewestFirst
	if len(recent) > statsPeriodLimit {
		recent = recent[:statsPeriodLimit]
	}
	cycles := PeriodsChronological(recent)

	rows := make([]CycleRow, 0, len(cycles))
	for i, cycle := range cycles {
		nextStart := AddDays(cycle.Start, model.CycleLength)
		if i+1 < len(cycles) {
			nextStart = cycles[i+1].Start
		}

		cycleDays := DiffDays(cycle.Start, nextStart)
		rows = append(rows, CycleRow{
			Start:          cycle.Start,
			BleedDays:      cycle.LengthDays(),
			CycleDays:      cycleDays,
			CycleDaysValid: cycleDays >= MinPlausibleCycleLength && cycleDays <= MaxPlausibleCycleLength,
			Ovulation:      EstimateOvulationForCycle(cycle.Start, nextStart, model.PersonalOffset, notes),
		})
	}
	return rows
}

// VariabilityLabel buckets the cycle-length standard deviation. The
// thresholds are the contract; wording is presentation.
func VariabilityLabel(stdDev float64) string {
	switch {
	case stdDev < 1.5:
		return VariabilityVeryStable
	case stdDev < 3.5:
		return VariabilityStable
	case stdDev < 6:
		return VariabilityVariable
	default:
		return VariabilityHighlyVariable
	}
}

// populationStdDev divides by N, not N-1; the cycle set is the whole
// population of interest, not a sample.
func populationStdDev(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, value := range values {
		sum += value
	}
	mean := float64(sum) / float64(len(values))

	variance := 0.0
	for _, value := range values {
		delta := float64(value) - mean
		variance += delta * delta
	}
	variance /= float64(len(values))
	return math.Sqrt(math.Max(0, variance))
}
