package services

import "github.com/terraincognita07/lunacy/internal/models"

// CycleSettings is the clamped, in-memory view of the user's cycle settings.
type CycleSettings struct {
	CycleLength  int
	PeriodLength int
	OvulationDay *int
	TTC          bool
}

func DefaultCycleSettings() CycleSettings {
	return CycleSettings{
		CycleLength:  models.DefaultCycleLength,
		PeriodLength: models.DefaultPeriodLength,
		TTC:          true,
	}
}

// SettingsFromUser clamps every numeric field into its documented range. The
// clamp runs on every load so out-of-range stored values recover silently.
func SettingsFromUser(user *models.User) CycleSettings {
	if user == nil {
		return DefaultCycleSettings()
	}

	settings := CycleSettings{
		CycleLength:  user.CycleLength,
		PeriodLength: user.PeriodLength,
		TTC:          user.TTC,
	}
	if settings.CycleLength == 0 {
		settings.CycleLength = models.DefaultCycleLength
	}
	if settings.PeriodLength == 0 {
		settings.PeriodLength = models.DefaultPeriodLength
	}
	settings.CycleLength = clampInt(settings.CycleLength, models.MinCycleLength, models.MaxCycleLength)
	settings.PeriodLength = clampInt(settings.PeriodLength, models.MinPeriodLength, models.MaxPeriodLength)

	if user.OvulationDay != nil {
		ovulationDay := clampInt(*user.OvulationDay, models.MinOvulationDay, models.MaxOvulationDay)
		settings.OvulationDay = &ovulationDay
	}
	return settings
}

// FallbackOvulationOffset is the offset used when no biomarker evidence
// exists: the user override (cycle day, so minus one for an offset) or the
// classic cycle-length-minus-14 luteal assumption.
func FallbackOvulationOffset(settings CycleSettings, cycleLength int) int {
	if settings.OvulationDay != nil {
		return *settings.OvulationDay - 1
	}
	if cycleLength <= 0 {
		cycleLength = settings.CycleLength
	}
	return cycleLength - 14
}
