package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	BleedDays *BleedDayRepository
	Notes     *NoteRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		BleedDays: NewBleedDayRepository(database),
		Notes:     NewNoteRepository(database),
	}
}
