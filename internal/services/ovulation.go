package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/lunacy/internal/models"
)

const (
	ReasonLHPositive    = "LH+"
	ReasonOvulationPain = "OVU_PAIN"
	ReasonCervicalMucus = "CERVIX"
	ReasonStandard      = "STANDARD"
)

const (
	// Learned offsets outside this range are discarded as implausible.
	minPlausibleOvulationOffset = 5
	maxPlausibleOvulationOffset = 50

	// The newest cycle has no next period yet; evidence is searched in a wide
	// open window after its start instead.
	openCycleWindowDays = 60

	// How many recent cycles feed the personal offset learner.
	offsetLearnerCycleLimit = 12

	reasonExcerptLimit = 36
)

// NotesByDate indexes notes by their ISO calendar day.
type NotesByDate map[string][]models.Note

func BuildNotesByDate(notes []models.Note) NotesByDate {
	byDate := make(NotesByDate, len(notes))
	for _, note := range notes {
		key := ISODay(note.Date)
		byDate[key] = append(byDate[key], note)
	}
	return byDate
}

// OvulationEstimate is the cascade result for one cycle window.
type OvulationEstimate struct {
	Date       time.Time
	CycleDay   int
	ReasonCode string
	ReasonText string
	Note       *models.Note
}

type cycleWindow struct {
	Start time.Time
	End   time.Time // inclusive cycle end
}

type ovulationStrategy func(window cycleWindow, notes NotesByDate) (OvulationEstimate, bool)

// EstimateOvulationForCycle runs the evidence cascade for one cycle window
// [periodStart, nextStart). Tiers are consulted in fixed priority order and the
// first hit wins: a positive LH test is the most direct signal, ovulation pain
// and fertile mucus are weaker physiological proxies, and the learned offset is
// the last resort. The cascade always produces an estimate.
func EstimateOvulationForCycle(periodStart time.Time, nextStart time.Time, personalOffset int, notes NotesByDate) OvulationEstimate {
	window := cycleWindow{
		Start: DateOnly(periodStart),
		End:   AddDays(nextStart, -1),
	}

	strategies := []ovulationStrategy{
		estimateFromPositiveLH,
		estimateFromOvulationPain,
		estimateFromFertileMucus,
	}
	for _, strategy := range strategies {
		if estimate, ok := strategy(window, notes); ok {
			estimate.CycleDay = DiffDays(window.Start, estimate.Date) + 1
			return estimate
		}
	}

	date := AddDays(window.Start, personalOffset)
	return OvulationEstimate{
		Date:       date,
		CycleDay:   DiffDays(window.Start, date) + 1,
		ReasonCode: ReasonStandard,
		ReasonText: fmt.Sprintf("Standard (offset day %d)", personalOffset+1),
	}
}

func estimateFromPositiveLH(window cycleWindow, notes NotesByDate) (OvulationEstimate, bool) {
	match, ok := findFirstNoteMatch(notes, window, func(note models.Note) bool {
		return note.Kind == models.NoteKindLHTest && isPositiveResult(note.Result)
	})
	if !ok {
		return OvulationEstimate{}, false
	}
	// Ovulation typically follows the LH surge by about a day.
	return OvulationEstimate{
		Date:       AddDays(match.date, 1),
		ReasonCode: ReasonLHPositive,
		ReasonText: fmt.Sprintf("LH+ (%s) +1 day", ISODay(match.date)),
	}, true
}

func estimateFromOvulationPain(window cycleWindow, notes NotesByDate) (OvulationEstimate, bool) {
	match, ok := findFirstNoteMatch(notes, window, func(note models.Note) bool {
		return note.Kind == models.NoteKindOvulationPain
	})
	if !ok {
		return OvulationEstimate{}, false
	}
	reason := "Ovulation pain"
	if side := NormalizeSide(match.note.Side); side != "" {
		reason += fmt.Sprintf(" (%s)", side)
	}
	if excerpt := shortText(match.note.Text, reasonExcerptLimit); excerpt != "" {
		reason += ": " + excerpt
	}
	note := match.note
	return OvulationEstimate{
		Date:       match.date,
		ReasonCode: ReasonOvulationPain,
		ReasonText: reason,
		Note:       &note,
	}, true
}

func estimateFromFertileMucus(window cycleWindow, notes NotesByDate) (OvulationEstimate, bool) {
	match, ok := findFirstNoteMatch(notes, window, isFertileMucusNote)
	if !ok {
		return OvulationEstimate{}, false
	}
	reason := "Cervical mucus (stretchy)"
	if excerpt := shortText(match.note.Text, reasonExcerptLimit); excerpt != "" {
		reason += ": " + excerpt
	}
	note := match.note
	return OvulationEstimate{
		Date:       match.date,
		ReasonCode: ReasonCervicalMucus,
		ReasonText: reason,
		Note:       &note,
	}, true
}

// LearnPersonalOvulationOffset averages the offsets implied by historical
// positive LH tests: for each cycle with one, ovulation sits a day after the
// earliest positive test, and the offset is its distance from the period
// start. Implausible offsets are dropped; without any evidence the supplied
// fallback comes back unchanged.
func LearnPersonalOvulationOffset(periodsNewestFirst []Period, notes NotesByDate, fallbackOffset int) int {
	chronological := PeriodsChronological(periodsNewestFirst)

	offsets := make([]int, 0, len(chronological))
	for i, period := range chronological {
		end := AddDays(period.Start, openCycleWindowDays)
		if i+1 < len(chronological) {
			end = AddDays(chronological[i+1].Start, -1)
		}
		window := cycleWindow{Start: period.Start, End: end}

		match, ok := findFirstNoteMatch(notes, window, func(note models.Note) bool {
			return note.Kind == models.NoteKindLHTest && isPositiveResult(note.Result)
		})
		if !ok {
			continue
		}
		offset := DiffDays(period.Start, AddDays(match.date, 1))
		if offset >= minPlausibleOvulationOffset && offset <= maxPlausibleOvulationOffset {
			offsets = append(offsets, offset)
		}
	}

	if len(offsets) == 0 {
		return fallbackOffset
	}
	sum := 0
	for _, offset := range offsets {
		sum += offset
	}
	return roundHalfAwayFromZero(float64(sum) / float64(len(offsets)))
}

type noteMatch struct {
	date time.Time
	note models.Note
}

// findFirstNoteMatch scans the window chronologically and returns the earliest
// matching note; notes on the same day are ordered by creation time, so the
// search is deterministic.
func findFirstNoteMatch(notes NotesByDate, window cycleWindow, predicate func(models.Note) bool) (noteMatch, bool) {
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

	for _, key := range keys {
		day, _ := ParseISODay(key)
		candidates := make([]models.Note, 0, len(notes[key]))
		candidates = append(candidates, notes[key]...)
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		})
		for _, note := range candidates {
			if predicate(note) {
				return noteMatch{date: day, note: note}, true
			}
		}
	}
	return noteMatch{}, false
}

func isPositiveResult(result string) bool {
	normalized := strings.ToLower(strings.TrimSpace(result))
	// "positiv" still appears in data imported from the German predecessor.
	return normalized == models.ResultPositive || normalized == "positiv"
}

// isFertileMucusNote matches the structured stretchy category first and falls
// back to a substring search over free text. The text match is best-effort,
// not a parse; it also covers the German term older entries used.
func isFertileMucusNote(note models.Note) bool {
	if note.Kind != models.NoteKindCervicalMucus {
		return false
	}
	result := strings.ToLower(strings.TrimSpace(note.Result))
	if result == models.MucusStretchy || result == "fadenziehend" {
		return true
	}
	text := strings.ToLower(note.Text)
	return strings.Contains(text, models.MucusStretchy) || strings.Contains(text, "fadenziehend")
}

// NormalizeSide maps stored side values, including legacy German ones, onto
// the canonical left/right/both set. Unknown values collapse to "".
func NormalizeSide(side string) string {
	switch strings.ToLower(strings.TrimSpace(side)) {
	case models.SideLeft, "links":
		return models.SideLeft
	case models.SideRight, "rechts":
		return models.SideRight
	case models.SideBoth, "beidseitig", "bilateral":
		return models.SideBoth
	default:
		return ""
	}
}

func shortText(text string, limit int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	runes := []rune(trimmed)
	if len(runes) <= limit {
		return trimmed
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
