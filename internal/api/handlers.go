package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunacy/internal/db"
	"github.com/terraincognita07/lunacy/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	repos        *db.Repositories
	authService  *services.AuthService
	dayService   *services.DayService
	secretKey    []byte
	cookieSecure bool
	location     *time.Location
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, cookieSecure bool) *Handler {
	if location == nil {
		location = time.UTC
	}
	repos := db.NewRepositories(database)
	return &Handler{
		repos:        repos,
		authService:  services.NewAuthService(repos.Users),
		dayService:   services.NewDayService(repos.BleedDays),
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
		location:     location,
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) today() time.Time {
	return services.DateOnly(time.Now().In(handler.location))
}

// loadEngineInput reconstructs the in-memory stores the inference engine
// works on. Missing data comes back as empty sets, never as an error the
// caller has to branch on.
func (handler *Handler) loadEngineInput(userID uint) ([]time.Time, services.NotesByDate, error) {
	days, err := handler.dayService.ListDays(userID)
	if err != nil {
		return nil, nil, err
	}
	notes, err := handler.repos.Notes.ListByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	return days, services.BuildNotesByDate(notes), nil
}
