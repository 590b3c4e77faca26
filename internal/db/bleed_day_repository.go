package db

import (
	"time"

	"github.com/terraincognita07/lunacy/internal/models"
	"gorm.io/gorm"
)

type BleedDayRepository struct {
	database *gorm.DB
}

func NewBleedDayRepository(database *gorm.DB) *BleedDayRepository {
	return &BleedDayRepository{database: database}
}

func (repo *BleedDayRepository) ListDates(userID uint) ([]time.Time, error) {
	rows := make([]models.BleedDay, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row.Date)
	}
	return dates, nil
}

// InsertDates creates rows for the given days, skipping days already stored.
func (repo *BleedDayRepository) InsertDates(userID uint, days []time.Time) error {
	if len(days) == 0 {
		return nil
	}
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for _, day := range days {
			row := models.BleedDay{UserID: userID, Date: day}
			if err := tx.Where("user_id = ? AND date = ?", userID, day).
				FirstOrCreate(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *BleedDayRepository) DeleteDates(userID uint, days []time.Time) error {
	if len(days) == 0 {
		return nil
	}
	return repo.database.
		Where("user_id = ? AND date IN ?", userID, days).
		Delete(&models.BleedDay{}).Error
}

func (repo *BleedDayRepository) DeleteAllForUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.BleedDay{}).Error
}
