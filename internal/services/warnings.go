package services

import "fmt"

const (
	WarnLevelHigh = "high"
	WarnLevelMid  = "mid"
	WarnLevelLow  = "low"
)

// CycleWarning is a non-medical hint derived from recent history. Warnings
// are computed fresh on every read; whether one is shown or snoozed is the
// consumer's concern.
type CycleWarning struct {
	ID    string
	Level string
	Title string
	Text  string
}

// ComputeCycleWarnings checks luteal length (only in trying-to-conceive
// mode), cycle-length drift, and cycle-length spread.
func ComputeCycleWarnings(ctx CycleContext, settings CycleSettings) []CycleWarning {
	warnings := make([]CycleWarning, 0)

	lutealDays := DiffDays(ctx.OvulationDate, ctx.NextStart)
	if settings.TTC && !ctx.OvulationDate.IsZero() {
		if lutealDays <= 8 {
			warnings = append(warnings, CycleWarning{
				ID:    "ttc_luteal_very_short",
				Level: WarnLevelHigh,
				Title: "Trying to conceive: luteal phase very short",
				Text:  fmt.Sprintf("Only %d days between estimated ovulation and the next period. If this keeps happening, discuss progesterone/luteal support with a gynecologist.", lutealDays),
			})
		} else if lutealDays <= 10 {
			warnings = append(warnings, CycleWarning{
				ID:    "ttc_luteal_short",
				Level: WarnLevelMid,
				Title: "Trying to conceive: luteal phase on the short side",
				Text:  fmt.Sprintf("%d days between estimated ovulation and the next period. Repeatedly under 11 days is worth a check.", lutealDays),
			})
		}
	}

	lengths := rawCycleLengths(ctx.Periods)
	if len(lengths) >= 6 {
		lastThree := averageOfInts(lengths[len(lengths)-3:])
		previousThree := averageOfInts(lengths[len(lengths)-6 : len(lengths)-3])
		delta := lastThree - previousThree
		if delta >= 3 {
			warnings = append(warnings, CycleWarning{
				ID:    "cycle_trend_longer",
				Level: WarnLevelMid,
				Title: "Your cycles are getting longer",
				Text:  fmt.Sprintf("The last 3 cycles average %+d days against the 3 before. If the trend continues, hormones/stress/thyroid may be worth a look.", roundHalfAwayFromZero(delta)),
			})
		} else if delta <= -3 {
			warnings = append(warnings, CycleWarning{
				ID:    "cycle_trend_shorter",
				Level: WarnLevelMid,
				Title: "Your cycles are getting shorter",
				Text:  fmt.Sprintf("The last 3 cycles average %d days against the 3 before. If this is new, consider discussing hormonal changes.", roundHalfAwayFromZero(delta)),
			})
		}

		recent := lengths[len(lengths)-6:]
		min, max := recent[0], recent[0]
		for _, length := range recent {
			if length < min {
				min = length
			}
			if length > max {
				max = length
			}
		}
		if max-min >= 8 {
			warnings = append(warnings, CycleWarning{
				ID:    "cycle_variability",
				Level: WarnLevelLow,
				Title: "Cycle length varies noticeably",
				Text:  fmt.Sprintf("Last 6 cycles: %d-%d days (spread %d). Can be normal; track LH/BBT if it bothers you.", min, max, max-min),
			})
		}
	}

	return warnings
}

// rawCycleLengths returns all start-to-start gaps oldest first, untrimmed;
// the warning heuristics look at the raw history.
func rawCycleLengths(periodsNewestFirst []Period) []int {
	chronological := PeriodsChronological(periodsNewestFirst)
	lengths := make([]int, 0, len(chronological))
	for i := 1; i < len(chronological); i++ {
		gap := DiffDays(chronological[i-1].Start, chronological[i].Start)
		if gap > 0 {
			lengths = append(lengths, gap)
		}
	}
	return lengths
}

func averageOfInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, value := range values {
		sum += value
	}
	return float64(sum) / float64(len(values))
}
