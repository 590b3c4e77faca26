package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/lunacy/internal/models"
)

const (
	PainPatternSwitchesOften = "switches often"
	PainPatternMostlySame    = "mostly same side"
	PainPatternMixed         = "mixed"
	PainPatternConsistent    = "consistent"
	PainPatternAlternating   = "alternating"
)

const DominantSideEven = "even"

// PainCycle pairs one cycle with its picked ovulation-pain note and the
// estimator's verdict for the same window.
type PainCycle struct {
	CycleStart    time.Time
	HasPain       bool
	NoteDate      time.Time
	Side          string
	Intensity     *int
	Ovulation     OvulationEstimate
	ProximityDays *int // pain day minus estimated ovulation day
}

type PainSideCounts struct {
	Left    int
	Right   int
	Both    int
	Unknown int
}

type PainSummary struct {
	TotalCycles    int
	WithPain       int
	Counts         PainSideCounts
	DominantSide   string
	PatternLabel   string
	OnOvulationDay int
	WithinOneDay   int
	Farther        int
}

// BuildPainCycles collects, per recent cycle, the ovulation-pain note that
// best represents it: the first entry with a usable side, otherwise the
// earliest entry in the window.
func BuildPainCycles(periodsNewestFirst []Period, notes NotesByDate, settings CycleSettings) []PainCycle {
	model := BuildCalendarModel(periodsNewestFirst, notes, settings, DefaultForecastCycles)

	recent := periodsNewestFirst
	if len(recent) > statsPeriodLimit {
		recent = recent[:statsPeriodLimit]
	}
	cycles := PeriodsChronological(recent)

	out := make([]PainCycle, 0, len(cycles))
	for i, cycle := range cycles {
		nextStart := AddDays(cycle.Start, model.CycleLength)
		if i+1 < len(cycles) {
			nextStart = cycles[i+1].Start
		}
		window := cycleWindow{Start: cycle.Start, End: AddDays(nextStart, -1)}

		matches := findNoteMatches(notes, window, func(note models.Note) bool {
			return note.Kind == models.NoteKindOvulationPain
		})

		estimate := EstimateOvulationForCycle(cycle.Start, nextStart, model.PersonalOffset, notes)
		item := PainCycle{CycleStart: cycle.Start, Ovulation: estimate}

		if len(matches) > 0 {
			picked := matches[0]
			for _, match := range matches {
				if NormalizeSide(match.note.Side) != "" {
					picked = match
					break
				}
			}
			proximity := DiffDays(estimate.Date, picked.date)
			item.HasPain = true
			item.NoteDate = picked.date
			item.Side = NormalizeSide(picked.note.Side)
			item.Intensity = picked.note.Intensity
			item.ProximityDays = &proximity
		}
		out = append(out, item)
	}
	return out
}

// SummarizePainCycles aggregates side counts, the dominant side, the
// left/right switching pattern, and how close pain falls to the estimated
// ovulation day.
func SummarizePainCycles(items []PainCycle) PainSummary {
	summary := PainSummary{TotalCycles: len(items)}

	sided := make([]string, 0, len(items))
	for _, item := range items {
		if !item.HasPain {
			continue
		}
		summary.WithPain++
		switch item.Side {
		case models.SideLeft:
			summary.Counts.Left++
		case models.SideRight:
			summary.Counts.Right++
		case models.SideBoth:
			summary.Counts.Both++
		default:
			summary.Counts.Unknown++
		}
		if item.Side == models.SideLeft || item.Side == models.SideRight {
			sided = append(sided, item.Side)
		}

		if item.ProximityDays != nil {
			switch {
			case *item.ProximityDays == 0:
				summary.OnOvulationDay++
			case *item.ProximityDays == 1 || *item.ProximityDays == -1:
				summary.WithinOneDay++
			default:
				summary.Farther++
			}
		}
	}

	if summary.Counts.Left > 0 || summary.Counts.Right > 0 {
		switch {
		case summary.Counts.Left == summary.Counts.Right:
			summary.DominantSide = DominantSideEven
		case summary.Counts.Left > summary.Counts.Right:
			summary.DominantSide = models.SideLeft
		default:
			summary.DominantSide = models.SideRight
		}
	}

	same, switched := 0, 0
	for i := 1; i < len(sided); i++ {
		if sided[i] == sided[i-1] {
			same++
		} else {
			switched++
		}
	}
	switch {
	case len(sided) >= 3 && switched >= same+1:
		summary.PatternLabel = PainPatternSwitchesOften
	case len(sided) >= 3 && same >= switched+1:
		summary.PatternLabel = PainPatternMostlySame
	case len(sided) >= 3:
		summary.PatternLabel = PainPatternMixed
	case len(sided) == 2 && sided[0] == sided[1]:
		summary.PatternLabel = PainPatternConsistent
	case len(sided) == 2:
		summary.PatternLabel = PainPatternAlternating
	}
	return summary
}

// findNoteMatches returns every matching note in the window, ordered by date
// then creation time.
func findNoteMatches(notes NotesByDate, window cycleWindow, predicate func(models.Note) bool) []noteMatch {
	keys := make([]string, 0, len(notes))
	for key := range notes {
		day, err := ParseISODay(key)
		if err != nil {
			continue
		}
		if BetweenDays(day, window.Start, window.End) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	matches := make([]noteMatch, 0)
	for _, key := range keys {
		day, _ := ParseISODay(key)
		candidates := make([]models.Note, 0, len(notes[key]))
		candidates = append(candidates, notes[key]...)
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		})
		for _, note := range candidates {
			if predicate(note) {
				matches = append(matches, noteMatch{date: day, note: note})
			}
		}
	}
	return matches
}
