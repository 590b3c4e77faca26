package services

import (
	"testing"

	"github.com/terraincognita07/lunacy/internal/models"
)

func TestBuildPainCycles(t *testing.T) {
	t.Parallel()

	days := append(dayRun("2024-01-01", "2024-01-05"), dayRun("2024-01-29", "2024-02-02")...)
	periods := DerivePeriods(days)
	notes := BuildNotesByDate([]models.Note{
		painNote("2024-01-15", models.SideLeft),
		painNote("2024-02-12", "rechts"),
	})

	items := BuildPainCycles(periods, notes, DefaultCycleSettings())

	if len(items) != 2 {
		t.Fatalf("expected 2 cycles, got %d", len(items))
	}
	first := items[0]
	if !first.HasPain || first.Side != models.SideLeft {
		t.Fatalf("expected left-sided pain in the first cycle, got %+v", first)
	}
	// Without LH evidence the pain note itself drives the estimate, so the
	// proximity collapses to zero.
	if first.ProximityDays == nil || *first.ProximityDays != 0 {
		t.Fatalf("expected proximity 0, got %v", first.ProximityDays)
	}
	if items[1].Side != models.SideRight {
		t.Fatalf("expected legacy side value normalized to right, got %q", items[1].Side)
	}
}

func TestBuildPainCycles_PrefersSidedNote(t *testing.T) {
	t.Parallel()

	days := dayRun("2024-01-01", "2024-01-05")
	periods := DerivePeriods(days)

	unsided := painNote("2024-01-13", "")
	sided := painNote("2024-01-15", models.SideRight)
	notes := BuildNotesByDate([]models.Note{unsided, sided})

	items := BuildPainCycles(periods, notes, DefaultCycleSettings())

	if len(items) != 1 || !items[0].HasPain {
		t.Fatalf("expected one cycle with pain, got %+v", items)
	}
	if items[0].Side != models.SideRight {
		t.Fatalf("expected the sided note to be picked, got %q", items[0].Side)
	}
	if got := ISODay(items[0].NoteDate); got != "2024-01-15" {
		t.Fatalf("expected note date 2024-01-15, got %s", got)
	}
}

func TestSummarizePainCycles(t *testing.T) {
	t.Parallel()

	proximityZero := 0
	proximityTwo := 2

	t.Run("alternating pair", func(t *testing.T) {
		summary := SummarizePainCycles([]PainCycle{
			{HasPain: true, Side: models.SideLeft, ProximityDays: &proximityZero},
			{HasPain: true, Side: models.SideRight, ProximityDays: &proximityTwo},
			{HasPain: false},
		})

		if summary.TotalCycles != 3 || summary.WithPain != 2 {
			t.Fatalf("expected 3 cycles with 2 painful, got %d/%d", summary.TotalCycles, summary.WithPain)
		}
		if summary.DominantSide != DominantSideEven {
			t.Fatalf("expected even sides, got %q", summary.DominantSide)
		}
		if summary.PatternLabel != PainPatternAlternating {
			t.Fatalf("expected %q, got %q", PainPatternAlternating, summary.PatternLabel)
		}
		if summary.OnOvulationDay != 1 || summary.Farther != 1 {
			t.Fatalf("expected one on-day and one farther, got %d/%d", summary.OnOvulationDay, summary.Farther)
		}
	})

	t.Run("mostly same side", func(t *testing.T) {
		summary := SummarizePainCycles([]PainCycle{
			{HasPain: true, Side: models.SideLeft},
			{HasPain: true, Side: models.SideLeft},
			{HasPain: true, Side: models.SideLeft},
			{HasPain: true, Side: models.SideRight},
		})
		if summary.DominantSide != models.SideLeft {
			t.Fatalf("expected left dominant, got %q", summary.DominantSide)
		}
		if summary.PatternLabel != PainPatternMostlySame {
			t.Fatalf("expected %q, got %q", PainPatternMostlySame, summary.PatternLabel)
		}
	})

	t.Run("switches often", func(t *testing.T) {
		summary := SummarizePainCycles([]PainCycle{
			{HasPain: true, Side: models.SideLeft},
			{HasPain: true, Side: models.SideRight},
			{HasPain: true, Side: models.SideLeft},
			{HasPain: true, Side: models.SideRight},
		})
		if summary.PatternLabel != PainPatternSwitchesOften {
			t.Fatalf("expected %q, got %q", PainPatternSwitchesOften, summary.PatternLabel)
		}
	})

	t.Run("both side counts separately", func(t *testing.T) {
		summary := SummarizePainCycles([]PainCycle{
			{HasPain: true, Side: models.SideBoth},
		})
		if summary.Counts.Both != 1 {
			t.Fatalf("expected one bilateral entry, got %d", summary.Counts.Both)
		}
		if summary.DominantSide != "" {
			t.Fatalf("expected no dominant side without lateral entries, got %q", summary.DominantSide)
		}
	})
}
