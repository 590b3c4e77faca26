package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires the JSON API. Everything except health and auth sits
// behind the session cookie.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)

	auth := app.Group("/api/auth")
	auth.Get("/status", handler.SetupStatus)
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)

	api := app.Group("/api", handler.AuthRequired)

	api.Get("/days", handler.GetDays)
	api.Post("/days/range", handler.AddDayRange)
	api.Delete("/days/range", handler.DeleteDayRange)
	api.Post("/days/:date", handler.AddDay)
	api.Delete("/days/:date", handler.DeleteDay)

	api.Get("/notes", handler.ListNotes)
	api.Get("/notes/kinds", handler.NoteKinds)
	api.Post("/notes", handler.CreateNote)
	api.Put("/notes/:id", handler.UpdateNote)
	api.Delete("/notes/:id", handler.DeleteNote)

	api.Get("/calendar/model", handler.GetCalendarModel)

	api.Get("/stats/overview", handler.GetStatsOverview)
	api.Get("/stats/cycles", handler.GetCycleTable)
	api.Get("/stats/ovulation-pain", handler.GetOvulationPainStats)
	api.Get("/stats/warnings", handler.GetCycleWarnings)

	api.Get("/cycle/progress", handler.GetCycleProgress)
	api.Get("/cycle/tww", handler.GetTwoWeekWait)

	api.Get("/settings", handler.GetSettings)
	api.Post("/settings/cycle", handler.UpdateCycleSettings)
}
