package services

import "time"

const DefaultForecastCycles = 6

const (
	// Start-to-start gaps outside this window are merge artifacts or logging
	// gaps, not real cycles, and are excluded from every average.
	MinPlausibleCycleLength = 15
	MaxPlausibleCycleLength = 60

	// How many recent period starts feed the cycle-length average.
	cycleLengthStartLimit = 13

	// Fertile window around an estimated ovulation day.
	fertileDaysBefore = 5
	fertileDaysAfter  = 1
)

type DateRange struct {
	Start time.Time
	End   time.Time
}

// CalendarModel aggregates everything the calendar, forecast, and export
// consumers need. It is recomputed from the raw stores on every read.
type CalendarModel struct {
	ActualPeriods    []Period
	ForecastPeriods  []Period
	FertileRanges    []DateRange
	OvulationDaysISO []string
	CycleLength      int
	PeriodLength     int
	PersonalOffset   int
	LatestStart      time.Time
	CurrentOvulation *OvulationEstimate
}

// TrimmedCycleLengths returns the start-to-start gaps of up to the 13 most
// recent periods, oldest first, with implausible gaps discarded.
func TrimmedCycleLengths(periodsNewestFirst []Period) []int {
	recent := periodsNewestFirst
	if len(recent) > cycleLengthStartLimit {
		recent = recent[:cycleLengthStartLimit]
	}
	chronological := PeriodsChronological(recent)

	lengths := make([]int, 0, len(chronological))
	for i := 1; i < len(chronological); i++ {
		gap := DiffDays(chronological[i-1].Start, chronological[i].Start)
		if gap >= MinPlausibleCycleLength && gap <= MaxPlausibleCycleLength {
			lengths = append(lengths, gap)
		}
	}
	return lengths
}

// AverageCycleLength is the trimmed mean of recent cycle lengths, rounded;
// the fallback applies when no plausible gap survives.
func AverageCycleLength(periodsNewestFirst []Period, fallback int) int {
	lengths := TrimmedCycleLengths(periodsNewestFirst)
	if len(lengths) == 0 {
		return fallback
	}
	sum := 0
	for _, length := range lengths {
		sum += length
	}
	return roundHalfAwayFromZero(float64(sum) / float64(len(lengths)))
}

func fertileRangeAround(ovulation time.Time) DateRange {
	return DateRange{
		Start: AddDays(ovulation, -fertileDaysBefore),
		End:   AddDays(ovulation, fertileDaysAfter),
	}
}

// BuildCalendarModel derives the full predictive model from period history,
// notes, and settings. With no history it returns a degenerate model carrying
// only the settings-derived lengths and fallback offset.
func BuildCalendarModel(periodsNewestFirst []Period, notes NotesByDate, settings CycleSettings, forecastCycles int) CalendarModel {
	if forecastCycles <= 0 {
		forecastCycles = DefaultForecastCycles
	}

	if len(periodsNewestFirst) == 0 {
		return CalendarModel{
			ActualPeriods:    []Period{},
			ForecastPeriods:  []Period{},
			FertileRanges:    []DateRange{},
			OvulationDaysISO: []string{},
			CycleLength:      settings.CycleLength,
			PeriodLength:     settings.PeriodLength,
			PersonalOffset:   FallbackOvulationOffset(settings, settings.CycleLength),
		}
	}

	latestStart := periodsNewestFirst[0].Start
	cycleLength := AverageCycleLength(periodsNewestFirst, settings.CycleLength)

	learnerPeriods := periodsNewestFirst
	if len(learnerPeriods) > offsetLearnerCycleLimit {
		learnerPeriods = learnerPeriods[:offsetLearnerCycleLimit]
	}
	fallbackOffset := FallbackOvulationOffset(settings, cycleLength)
	personalOffset := LearnPersonalOvulationOffset(learnerPeriods, notes, fallbackOffset)

	actualPeriods := make([]Period, 0, len(periodsNewestFirst))
	actualPeriods = append(actualPeriods, periodsNewestFirst...)

	nextStart := AddDays(latestStart, cycleLength)
	if len(periodsNewestFirst) > 1 {
		nextStart = periodsNewestFirst[1].Start
	}
	currentOvulation := EstimateOvulationForCycle(latestStart, nextStart, personalOffset, notes)

	fertileRanges := make([]DateRange, 0, forecastCycles+1)
	ovulationDays := make([]string, 0, forecastCycles+1)
	ovulationDays = append(ovulationDays, ISODay(currentOvulation.Date))
	fertileRanges = append(fertileRanges, fertileRangeAround(currentOvulation.Date))

	forecastPeriods := make([]Period, 0, forecastCycles)
	for k := 1; k <= forecastCycles; k++ {
		start := AddDays(latestStart, cycleLength*k)
		forecastPeriods = append(forecastPeriods, Period{
			Start: start,
			End:   AddDays(start, settings.PeriodLength-1),
		})

		ovulation := AddDays(start, personalOffset)
		ovulationDays = append(ovulationDays, ISODay(ovulation))
		fertileRanges = append(fertileRanges, fertileRangeAround(ovulation))
	}

	return CalendarModel{
		ActualPeriods:    actualPeriods,
		ForecastPeriods:  forecastPeriods,
		FertileRanges:    fertileRanges,
		OvulationDaysISO: ovulationDays,
		CycleLength:      cycleLength,
		PeriodLength:     settings.PeriodLength,
		PersonalOffset:   personalOffset,
		LatestStart:      latestStart,
		CurrentOvulation: &currentOvulation,
	}
}
