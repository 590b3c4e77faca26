package models

import "time"

// BleedDay marks one calendar date with recorded bleeding. Dates are stored
// date-only; a (user, date) pair exists at most once.
type BleedDay struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_bleed_user_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_bleed_user_date"`
	CreatedAt time.Time
}
