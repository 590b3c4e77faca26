package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5

	MinCycleLength  = 15
	MaxCycleLength  = 60
	MinPeriodLength = 1
	MaxPeriodLength = 14
	MinOvulationDay = 6
	MaxOvulationDay = 50
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CycleLength  int    `gorm:"not null;default:28"`
	PeriodLength int    `gorm:"not null;default:5"`
	OvulationDay *int
	TTC          bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"not null"`
}
