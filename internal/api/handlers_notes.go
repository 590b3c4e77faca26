package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunacy/internal/models"
	"github.com/terraincognita07/lunacy/internal/services"
)

type noteInput struct {
	Date      string `json:"date"`
	Kind      string `json:"kind"`
	Result    string `json:"result"`
	Side      string `json:"side"`
	Intensity *int   `json:"intensity"`
	Text      string `json:"text"`
}

type noteView struct {
	ID        uint   `json:"id"`
	Date      string `json:"date"`
	Kind      string `json:"kind"`
	Result    string `json:"result,omitempty"`
	Side      string `json:"side,omitempty"`
	Intensity *int   `json:"intensity,omitempty"`
	Text      string `json:"text,omitempty"`
}

func renderNote(note models.Note) noteView {
	return noteView{
		ID:        note.ID,
		Date:      services.ISODay(note.Date),
		Kind:      note.Kind,
		Result:    note.Result,
		Side:      note.Side,
		Intensity: note.Intensity,
		Text:      note.Text,
	}
}

func renderNotes(notes []models.Note) []noteView {
	out := make([]noteView, 0, len(notes))
	for _, note := range notes {
		out = append(out, renderNote(note))
	}
	return out
}

func noteInputError(err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownNoteKind),
		errors.Is(err, services.ErrInvalidNoteResult),
		errors.Is(err, services.ErrInvalidNoteSide):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.ErrInternalServerError
	}
}

func (handler *Handler) ListNotes(c *fiber.Ctx) error {
	user := currentUser(c)

	if raw := c.Query("date"); raw != "" {
		day, err := parseDayQuery(c, "date", handler.today())
		if err != nil {
			return err
		}
		notes, err := handler.repos.Notes.ListByUserAndDate(user.ID, day)
		if err != nil {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"notes": renderNotes(notes)})
	}

	notes, err := handler.repos.Notes.ListByUser(user.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"notes": renderNotes(notes)})
}

func (handler *Handler) CreateNote(c *fiber.Ctx) error {
	user := currentUser(c)

	input := noteInput{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	day, err := services.ParseISODay(input.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	normalized, err := services.NormalizeNoteInput(services.NoteInput{
		Kind:      input.Kind,
		Result:    input.Result,
		Side:      input.Side,
		Intensity: input.Intensity,
		Text:      input.Text,
	})
	if err != nil {
		return noteInputError(err)
	}

	note := models.Note{
		UserID:    user.ID,
		Date:      day,
		Kind:      normalized.Kind,
		Result:    normalized.Result,
		Side:      normalized.Side,
		Intensity: normalized.Intensity,
		Text:      normalized.Text,
	}
	if err := handler.repos.Notes.Create(&note); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(renderNote(note))
}

func (handler *Handler) UpdateNote(c *fiber.Ctx) error {
	user := currentUser(c)
	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	note, found, err := handler.repos.Notes.FindByIDForUser(noteID, user.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "note not found")
	}

	input := noteInput{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	if input.Date != "" {
		day, err := services.ParseISODay(input.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		note.Date = day
	}
	kind := note.Kind
	if input.Kind != "" {
		kind = input.Kind
	}

	normalized, err := services.NormalizeNoteInput(services.NoteInput{
		Kind:      kind,
		Result:    input.Result,
		Side:      input.Side,
		Intensity: input.Intensity,
		Text:      input.Text,
	})
	if err != nil {
		return noteInputError(err)
	}

	note.Kind = normalized.Kind
	note.Result = normalized.Result
	note.Side = normalized.Side
	note.Intensity = normalized.Intensity
	note.Text = normalized.Text
	if err := handler.repos.Notes.Save(&note); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(renderNote(note))
}

func (handler *Handler) DeleteNote(c *fiber.Ctx) error {
	user := currentUser(c)
	noteID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := handler.repos.Notes.DeleteByIDForUser(noteID, user.ID); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"deleted": noteID})
}

func (handler *Handler) NoteKinds(c *fiber.Ctx) error {
	kinds := make([]fiber.Map, 0)
	for _, kind := range models.NoteKinds() {
		config := models.KindConfig(kind)
		kinds = append(kinds, fiber.Map{
			"kind":           kind,
			"has_result":     config.HasResult,
			"result_options": config.ResultOptions,
			"has_side":       config.HasSide,
			"has_intensity":  config.HasIntensity,
		})
	}
	return c.JSON(fiber.Map{"kinds": kinds})
}
