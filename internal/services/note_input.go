package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/lunacy/internal/models"
)

var (
	ErrUnknownNoteKind   = errors.New("unknown note kind")
	ErrInvalidNoteResult = errors.New("result not valid for this note kind")
	ErrInvalidNoteSide   = errors.New("side not valid for this note kind")
)

// NoteInput is a user-supplied note before validation.
type NoteInput struct {
	Kind      string
	Result    string
	Side      string
	Intensity *int
	Text      string
}

// NormalizeNoteInput validates a note against its kind's field set and strips
// fields the kind does not carry, so stored notes stay shaped like their
// variant.
func NormalizeNoteInput(input NoteInput) (NoteInput, error) {
	kind := strings.TrimSpace(input.Kind)
	if !models.IsKnownNoteKind(kind) {
		return NoteInput{}, ErrUnknownNoteKind
	}
	config := models.KindConfig(kind)

	normalized := NoteInput{
		Kind: kind,
		Text: strings.TrimSpace(input.Text),
	}

	result := strings.ToLower(strings.TrimSpace(input.Result))
	if config.HasResult && result != "" {
		if !containsString(config.ResultOptions, result) {
			return NoteInput{}, ErrInvalidNoteResult
		}
		normalized.Result = result
	}

	if config.HasSide {
		side := NormalizeSide(input.Side)
		if side == "" && strings.TrimSpace(input.Side) != "" {
			return NoteInput{}, ErrInvalidNoteSide
		}
		normalized.Side = side
	}

	if config.HasIntensity && input.Intensity != nil {
		intensity := clampInt(*input.Intensity, models.MinIntensity, models.MaxIntensity)
		normalized.Intensity = &intensity
	}

	return normalized, nil
}

func containsString(values []string, needle string) bool {
	for _, value := range values {
		if value == needle {
			return true
		}
	}
	return false
}
