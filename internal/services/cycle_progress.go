package services

import "time"

const (
	MilestonePeriodEnd  = "period_end"
	MilestoneOvulation  = "ovulation"
	MilestoneNextPeriod = "next_period"
)

const (
	PhaseMenstrual  = "menstrual"
	PhaseFertile    = "fertile"
	PhaseLuteal     = "luteal"
	PhaseFollicular = "follicular"
)

// CycleContext is the derived view of the in-progress cycle that the
// progress, phase, two-week-wait, and warning computations share.
type CycleContext struct {
	Days          []time.Time
	Periods       []Period
	Model         CalendarModel
	CycleStart    time.Time
	NextStart     time.Time
	OvulationDate time.Time
	PeriodEnd     time.Time
}

// BuildCycleContext derives the current-cycle context from the raw stores.
// Returns false when no period has been logged yet.
func BuildCycleContext(days []time.Time, notes NotesByDate, settings CycleSettings) (CycleContext, bool) {
	periods := DerivePeriods(days)
	model := BuildCalendarModel(periods, notes, settings, DefaultForecastCycles)
	if len(periods) == 0 || model.LatestStart.IsZero() {
		return CycleContext{}, false
	}

	cycleStart := model.LatestStart
	nextStart := AddDays(cycleStart, model.CycleLength)
	if len(periods) > 1 {
		nextStart = periods[1].Start
	}

	ovulationDate := AddDays(cycleStart, model.PersonalOffset)
	if model.CurrentOvulation != nil {
		ovulationDate = model.CurrentOvulation.Date
	}

	return CycleContext{
		Days:          NormalizeBleedDays(days),
		Periods:       periods,
		Model:         model,
		CycleStart:    cycleStart,
		NextStart:     nextStart,
		OvulationDate: ovulationDate,
		PeriodEnd:     AddDays(cycleStart, model.PeriodLength-1),
	}, true
}

// CycleProgress describes where today sits in the cycle and what comes next.
type CycleProgress struct {
	DayInCycle        int
	CycleLength       int
	OvulationCycleDay int
	InPeriod          bool
	NextMilestone     string
	NextDate          time.Time
	DaysUntil         int
}

func BuildCycleProgress(ctx CycleContext, today time.Time) CycleProgress {
	cycleLength := ctx.Model.CycleLength
	if cycleLength < 1 {
		cycleLength = 1
	}
	day := DateOnly(today)

	progress := CycleProgress{
		DayInCycle:        clampInt(DiffDays(ctx.CycleStart, day)+1, 1, cycleLength),
		CycleLength:       cycleLength,
		OvulationCycleDay: clampInt(DiffDays(ctx.CycleStart, ctx.OvulationDate)+1, 1, cycleLength),
		InPeriod:          containsDay(ctx.Days, day) || BetweenDays(day, ctx.CycleStart, ctx.PeriodEnd),
	}

	switch {
	case progress.InPeriod:
		progress.NextMilestone = MilestonePeriodEnd
		progress.NextDate = ctx.PeriodEnd
	case day.After(ctx.OvulationDate):
		progress.NextMilestone = MilestoneNextPeriod
		progress.NextDate = ctx.NextStart
	default:
		progress.NextMilestone = MilestoneOvulation
		progress.NextDate = ctx.OvulationDate
	}
	if until := DiffDays(day, progress.NextDate); until > 0 {
		progress.DaysUntil = until
	}
	return progress
}

// PhaseInfo labels one calendar day within the current cycle. The labels are
// deliberately coarse heuristics.
type PhaseInfo struct {
	Key         string
	DayInCycle  int
	CycleLength int
}

func PhaseForDate(ctx CycleContext, day time.Time) PhaseInfo {
	d := DateOnly(day)
	fertile := fertileRangeAround(ctx.OvulationDate)

	key := PhaseFollicular
	switch {
	case containsDay(ctx.Days, d) || BetweenDays(d, ctx.CycleStart, ctx.PeriodEnd):
		key = PhaseMenstrual
	case BetweenDays(d, fertile.Start, fertile.End):
		key = PhaseFertile
	case d.After(fertile.End) && d.Before(ctx.NextStart):
		key = PhaseLuteal
	}

	return PhaseInfo{
		Key:         key,
		DayInCycle:  clampInt(DiffDays(ctx.CycleStart, d)+1, 1, ctx.Model.CycleLength),
		CycleLength: ctx.Model.CycleLength,
	}
}

// TwoWeekWait reports days past estimated ovulation plus the typical serum
// hCG reference for that DPO. Reference ranges only, never a diagnosis.
type TwoWeekWait struct {
	DPO      int
	HCGRange string
	HCGNote  string
}

func BuildTwoWeekWait(ctx CycleContext, today time.Time) TwoWeekWait {
	dpo := DiffDays(ctx.OvulationDate, DateOnly(today))
	hcgRange, note := hcgReferenceForDPO(dpo)
	return TwoWeekWait{DPO: dpo, HCGRange: hcgRange, HCGNote: note}
}

// hcgReferenceForDPO maps DPO to a rough serum range in mIU/ml. hCG only
// appears after implantation (typically around DPO 6-7), and urine tests lag
// serum levels.
func hcgReferenceForDPO(dpo int) (string, string) {
	switch {
	case dpo < 5:
		return "", "before implantation: no hCG"
	case dpo <= 6:
		return "<1-2", "not detectable"
	case dpo == 7:
		return "1-5", "usually below detection limit"
	case dpo == 8:
		return "2-10", "urine tests usually negative"
	case dpo == 9:
		return "5-25", "very early"
	case dpo == 10:
		return "10-50", "sensitive early tests may show"
	case dpo == 11:
		return "20-100", "tests increasingly possible"
	case dpo == 12:
		return "30-200", "often detectable"
	default:
		return "100-500+", "standard tests relevant"
	}
}

func containsDay(days []time.Time, day time.Time) bool {
	for _, candidate := range days {
		if SameCalendarDay(candidate, day) {
			return true
		}
	}
	return false
}
