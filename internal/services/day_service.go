package services

import "time"

// BleedDayStore is the persistence surface the day service needs. The stored
// set is whole-set semantics: list, insert missing rows, delete rows.
type BleedDayStore interface {
	ListDates(userID uint) ([]time.Time, error)
	InsertDates(userID uint, days []time.Time) error
	DeleteDates(userID uint, days []time.Time) error
}

type DayService struct {
	days BleedDayStore
}

func NewDayService(days BleedDayStore) *DayService {
	return &DayService{days: days}
}

func (service *DayService) ListDays(userID uint) ([]time.Time, error) {
	days, err := service.days.ListDates(userID)
	if err != nil {
		return nil, err
	}
	return NormalizeBleedDays(days), nil
}

// AddDay records one bleed day and persists whatever gap fill synthesizes
// around it.
func (service *DayService) AddDay(userID uint, day time.Time) error {
	return service.addDays(userID, []time.Time{DateOnly(day)})
}

// AddRange records every day of the range; swapped endpoints are reordered,
// a missing endpoint is a no-op.
func (service *DayService) AddRange(userID uint, from time.Time, to time.Time) error {
	days := ExpandDayRange(from, to)
	if len(days) == 0 {
		return nil
	}
	return service.addDays(userID, days)
}

func (service *DayService) RemoveDay(userID uint, day time.Time) error {
	return service.days.DeleteDates(userID, []time.Time{DateOnly(day)})
}

func (service *DayService) RemoveRange(userID uint, from time.Time, to time.Time) error {
	days := ExpandDayRange(from, to)
	if len(days) == 0 {
		return nil
	}
	return service.days.DeleteDates(userID, days)
}

func (service *DayService) addDays(userID uint, added []time.Time) error {
	existing, err := service.days.ListDates(userID)
	if err != nil {
		return err
	}
	merged := MergeBleedDays(existing, added...)

	have := make(map[string]bool, len(existing))
	for _, day := range existing {
		have[ISODay(day)] = true
	}
	missing := make([]time.Time, 0, len(merged))
	for _, day := range merged {
		if !have[ISODay(day)] {
			missing = append(missing, day)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return service.days.InsertDates(userID, missing)
}
