package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunacy/internal/services"
)

type periodView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type rangeView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ovulationView struct {
	Date       string `json:"date"`
	CycleDay   int    `json:"cycle_day"`
	ReasonCode string `json:"reason_code"`
	ReasonText string `json:"reason_text"`
}

type calendarModelView struct {
	ActualPeriods    []periodView   `json:"actual_periods"`
	ForecastPeriods  []periodView   `json:"forecast_periods"`
	FertileRanges    []rangeView    `json:"fertile_ranges"`
	OvulationDays    []string       `json:"ovulation_days"`
	CycleLength      int            `json:"cycle_length"`
	PeriodLength     int            `json:"period_length"`
	PersonalOffset   int            `json:"personal_offset"`
	LatestStart      string         `json:"latest_start,omitempty"`
	CurrentOvulation *ovulationView `json:"current_ovulation,omitempty"`
}

func renderPeriods(periods []services.Period) []periodView {
	out := make([]periodView, 0, len(periods))
	for _, period := range periods {
		out = append(out, periodView{
			Start: services.ISODay(period.Start),
			End:   services.ISODay(period.End),
		})
	}
	return out
}

func renderRanges(ranges []services.DateRange) []rangeView {
	out := make([]rangeView, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, rangeView{
			Start: services.ISODay(r.Start),
			End:   services.ISODay(r.End),
		})
	}
	return out
}

func renderOvulation(estimate services.OvulationEstimate) ovulationView {
	return ovulationView{
		Date:       services.ISODay(estimate.Date),
		CycleDay:   estimate.CycleDay,
		ReasonCode: estimate.ReasonCode,
		ReasonText: estimate.ReasonText,
	}
}

func renderCalendarModel(model services.CalendarModel) calendarModelView {
	view := calendarModelView{
		ActualPeriods:   renderPeriods(model.ActualPeriods),
		ForecastPeriods: renderPeriods(model.ForecastPeriods),
		FertileRanges:   renderRanges(model.FertileRanges),
		OvulationDays:   model.OvulationDaysISO,
		CycleLength:     model.CycleLength,
		PeriodLength:    model.PeriodLength,
		PersonalOffset:  model.PersonalOffset,
	}
	if !model.LatestStart.IsZero() {
		view.LatestStart = services.ISODay(model.LatestStart)
	}
	if model.CurrentOvulation != nil {
		ovulation := renderOvulation(*model.CurrentOvulation)
		view.CurrentOvulation = &ovulation
	}
	return view
}

func (handler *Handler) GetCalendarModel(c *fiber.Ctx) error {
	user := currentUser(c)

	forecastCycles := services.DefaultForecastCycles
	if raw := c.Query("cycles"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 24 {
			return fiber.NewError(fiber.StatusBadRequest, "cycles must be between 1 and 24")
		}
		forecastCycles = parsed
	}

	days, notes, err := handler.loadEngineInput(user.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	settings := services.SettingsFromUser(user)

	periods := services.DerivePeriods(days)
	model := services.BuildCalendarModel(periods, notes, settings, forecastCycles)
	return c.JSON(renderCalendarModel(model))
}
