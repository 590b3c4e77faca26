package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunacy/internal/services"
)

type cycleSettingsInput struct {
	CycleLength  *int  `json:"cycle_length"`
	PeriodLength *int  `json:"period_length"`
	OvulationDay *int  `json:"ovulation_day"`
	ClearOvuDay  bool  `json:"clear_ovulation_day"`
	TTC          *bool `json:"ttc"`
}

func renderSettings(settings services.CycleSettings) fiber.Map {
	return fiber.Map{
		"cycle_length":  settings.CycleLength,
		"period_length": settings.PeriodLength,
		"ovulation_day": settings.OvulationDay,
		"ttc":           settings.TTC,
	}
}

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.JSON(renderSettings(services.SettingsFromUser(user)))
}

// UpdateCycleSettings applies a partial update. Out-of-range values clamp
// instead of erroring, matching the load path.
func (handler *Handler) UpdateCycleSettings(c *fiber.Ctx) error {
	user := currentUser(c)

	input := cycleSettingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	if input.CycleLength != nil {
		user.CycleLength = *input.CycleLength
	}
	if input.PeriodLength != nil {
		user.PeriodLength = *input.PeriodLength
	}
	if input.ClearOvuDay {
		user.OvulationDay = nil
	} else if input.OvulationDay != nil {
		user.OvulationDay = input.OvulationDay
	}
	if input.TTC != nil {
		user.TTC = *input.TTC
	}

	settings := services.SettingsFromUser(user)
	user.CycleLength = settings.CycleLength
	user.PeriodLength = settings.PeriodLength
	user.OvulationDay = settings.OvulationDay

	if err := handler.authService.SaveUser(user); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(renderSettings(settings))
}
