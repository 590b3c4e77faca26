package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunacy/internal/services"
)

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	user := currentUser(c)

	days, err := handler.dayService.ListDays(user.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, services.ISODay(day))
	}
	return c.JSON(fiber.Map{"days": out})
}

func (handler *Handler) AddDay(c *fiber.Ctx) error {
	user := currentUser(c)
	day, err := parseDayParam(c, "date")
	if err != nil {
		return err
	}

	if err := handler.dayService.AddDay(user.ID, day); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"date": services.ISODay(day)})
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	user := currentUser(c)
	day, err := parseDayParam(c, "date")
	if err != nil {
		return err
	}

	if err := handler.dayService.RemoveDay(user.ID, day); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"deleted": services.ISODay(day)})
}

func (handler *Handler) AddDayRange(c *fiber.Ctx) error {
	user := currentUser(c)

	input := dayRangeInput{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	from, to, err := input.parse()
	if err != nil {
		return err
	}

	if err := handler.dayService.AddRange(user.ID, from, to); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeleteDayRange(c *fiber.Ctx) error {
	user := currentUser(c)

	input := dayRangeInput{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	from, to, err := input.parse()
	if err != nil {
		return err
	}

	if err := handler.dayService.RemoveRange(user.ID, from, to); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"ok": true})
}
