package services

import (
	"time"

	"github.com/terraincognita07/lunacy/internal/models"
)

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}

func daysFromISO(raws ...string) []time.Time {
	days := make([]time.Time, 0, len(raws))
	for _, raw := range raws {
		days = append(days, mustParseDay(raw))
	}
	return days
}

// dayRun lists from..to inclusive.
func dayRun(from string, to string) []time.Time {
	return ExpandDayRange(mustParseDay(from), mustParseDay(to))
}

func makeNote(day string, kind string, mutate func(*models.Note)) models.Note {
	note := models.Note{
		Date:      mustParseDay(day),
		Kind:      kind,
		CreatedAt: mustParseDay(day).Add(8 * time.Hour),
	}
	if mutate != nil {
		mutate(&note)
	}
	return note
}

func lhNote(day string, result string) models.Note {
	return makeNote(day, models.NoteKindLHTest, func(note *models.Note) {
		note.Result = result
	})
}

func painNote(day string, side string) models.Note {
	return makeNote(day, models.NoteKindOvulationPain, func(note *models.Note) {
		note.Side = side
	})
}

func mucusNote(day string, result string, text string) models.Note {
	return makeNote(day, models.NoteKindCervicalMucus, func(note *models.Note) {
		note.Result = result
		note.Text = text
	})
}
