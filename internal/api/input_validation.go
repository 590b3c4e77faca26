package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunacy/internal/services"
)

func parseDayParam(c *fiber.Ctx, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Params(name))
	day, err := services.ParseISODay(raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	return day, nil
}

func parseDayQuery(c *fiber.Ctx, name string, fallback time.Time) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	day, err := services.ParseISODay(raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	return day, nil
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(value), nil
}

type dayRangeInput struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// parseRange maps an empty endpoint to a zero time; the services treat that
// pair as a no-op rather than an error.
func (input dayRangeInput) parse() (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if strings.TrimSpace(input.From) != "" {
		if from, err = services.ParseISODay(input.From); err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid from date")
		}
	}
	if strings.TrimSpace(input.To) != "" {
		if to, err = services.ParseISODay(input.To); err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid to date")
		}
	}
	return from, to, nil
}
