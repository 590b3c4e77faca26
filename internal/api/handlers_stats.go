package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunacy/internal/services"
)

type cycleRowView struct {
	Start          string        `json:"start"`
	BleedDays      int           `json:"bleed_days"`
	CycleDays      int           `json:"cycle_days"`
	CycleDaysValid bool          `json:"cycle_days_valid"`
	Ovulation      ovulationView `json:"ovulation"`
}

func (handler *Handler) GetStatsOverview(c *fiber.Ctx) error {
	user := currentUser(c)

	days, notes, err := handler.loadEngineInput(user.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	settings := services.SettingsFromUser(user)
	periods := services.DerivePeriods(days)

	overview := services.BuildCycleOverview(periods, notes, settings)
	return c.JSON(fiber.Map{
		"average_cycle_length":  overview.AverageCycleLength,
		"average_period_length": overview.AveragePeriodLength,
		"cycle_length_stddev":   overview.CycleLengthStdDev,
		"variability":           overview.VariabilityLabel,
		"personal_offset":       overview.PersonalOffset,
		"observed_cycles":       overview.ObservedCycles,
	})
}

func (handler *Handler) GetCycleTable(c *fiber.Ctx) error {
	user := currentUser(c)

	days, notes, err := handler.loadEngineInput(user.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	settings := services.SettingsFromUser(user)
	periods := services.DerivePeriods(days)

	rows := services.BuildCycleTable(periods, notes, settings)
	out := make([]cycleRowView, 0, len(rows))
	for _, row := range rows {
		out = append(out, cycleRowView{
			Start:          services.ISODay(row.Start),
			BleedDays:      row.BleedDays,
			CycleDays:      row.CycleDays,
			CycleDaysValid: row.CycleDaysValid,
			Ovulation:      renderOvulation(row.Ovulation),
		})
	}
	return c.JSON(fiber.Map{"cycles": out})
}

func (handler *Handler) GetOvulationPainStats(c *fiber.Ctx) error {
	user := currentUser(c)

	days, notes, err := handler.loadEngineInput(user.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	settings := services.SettingsFromUser(user)
	periods := services.DerivePeriods(days)

	items := services.BuildPainCycles(periods, notes, settings)
	summary := services.SummarizePainCycles(items)

	cycles := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		view := fiber.Map{
			"cycle_start": services.ISODay(item.CycleStart),
			"has_pain":    item.HasPain,
			"ovulation":   renderOvulation(item.Ovulation),
		}
		if item.HasPain {
			view["note_date"] = services.ISODay(item.NoteDate)
			view["side"] = item.Side
			view["intensity"] = item.Intensity
			view["proximity_days"] = item.ProximityDays
		}
		cycles = append(cycles, view)
	}

	return c.JSON(fiber.Map{
		"cycles": cycles,
		"summary": fiber.Map{
			"total_cycles": summary.TotalCycles,
			"with_pain":    summary.WithPain,
			"counts": fiber.Map{
				"left":    summary.Counts.Left,
				"right":   summary.Counts.Right,
				"both":    summary.Counts.Both,
				"unknown": summary.Counts.Unknown,
			},
			"dominant_side":    summary.DominantSide,
			"pattern":          summary.PatternLabel,
			"on_ovulation_day": summary.OnOvulationDay,
			"within_one_day":   summary.WithinOneDay,
			"farther":          summary.Farther,
		},
	})
}

func (handler *Handler) GetCycleWarnings(c *fiber.Ctx) error {
	user := currentUser(c)

	days, notes, err := handler.loadEngineInput(user.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	settings := services.SettingsFromUser(user)

	ctx, ok := services.BuildCycleContext(days, notes, settings)
	if !ok {
		return c.JSON(fiber.Map{"warnings": []fiber.Map{}})
	}

	warnings := services.ComputeCycleWarnings(ctx, settings)
	out := make([]fiber.Map, 0, len(warnings))
	for _, warning := range warnings {
		out = append(out, fiber.Map{
			"id":    warning.ID,
			"level": warning.Level,
			"title": warning.Title,
			"text":  warning.Text,
		})
	}
	return c.JSON(fiber.Map{"warnings": out})
}
