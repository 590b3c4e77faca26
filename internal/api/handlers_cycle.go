package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunacy/internal/services"
)

func (handler *Handler) cycleContext(c *fiber.Ctx) (services.CycleContext, services.CycleSettings, bool, error) {
	user := currentUser(c)

	days, notes, err := handler.loadEngineInput(user.ID)
	if err != nil {
		return services.CycleContext{}, services.CycleSettings{}, false, fiber.ErrInternalServerError
	}
	settings := services.SettingsFromUser(user)

	ctx, ok := services.BuildCycleContext(days, notes, settings)
	return ctx, settings, ok, nil
}

func (handler *Handler) GetCycleProgress(c *fiber.Ctx) error {
	day, err := parseDayQuery(c, "date", handler.today())
	if err != nil {
		return err
	}

	ctx, _, ok, err := handler.cycleContext(c)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(fiber.Map{"has_data": false})
	}

	progress := services.BuildCycleProgress(ctx, day)
	phase := services.PhaseForDate(ctx, day)

	return c.JSON(fiber.Map{
		"has_data":            true,
		"date":                services.ISODay(day),
		"day_in_cycle":        progress.DayInCycle,
		"cycle_length":        progress.CycleLength,
		"ovulation_cycle_day": progress.OvulationCycleDay,
		"in_period":           progress.InPeriod,
		"next_milestone":      progress.NextMilestone,
		"next_date":           services.ISODay(progress.NextDate),
		"days_until":          progress.DaysUntil,
		"phase": fiber.Map{
			"key":          phase.Key,
			"day_in_cycle": phase.DayInCycle,
			"cycle_length": phase.CycleLength,
		},
	})
}

func (handler *Handler) GetTwoWeekWait(c *fiber.Ctx) error {
	day, err := parseDayQuery(c, "date", handler.today())
	if err != nil {
		return err
	}

	ctx, _, ok, err := handler.cycleContext(c)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(fiber.Map{"has_data": false})
	}

	tww := services.BuildTwoWeekWait(ctx, day)
	return c.JSON(fiber.Map{
		"has_data":  true,
		"date":      services.ISODay(day),
		"ovulation": services.ISODay(ctx.OvulationDate),
		"dpo":       tww.DPO,
		"hcg_range": tww.HCGRange,
		"hcg_note":  tww.HCGNote,
	})
}
