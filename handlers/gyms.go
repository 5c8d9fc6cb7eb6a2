// handlers/gyms.go
package handlers

import (
	"boulder-session-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGymRoutes(secured, admin fiber.Router, gymService *services.GymService, scheduleService *services.ScheduleService) {
	// Static paths before :slug
	secured.Get("/gyms", gymService.ListGyms)
	secured.Get("/gyms/search", gymService.SearchGyms)
	secured.Get("/gyms/recommendations", gymService.Recommendations)
	secured.Get("/gyms/ranked", gymService.RankedGyms)
	secured.Get("/gyms/:slug", gymService.GetGym)

	secured.Get("/schedules", scheduleService.ListSchedules)
	secured.Get("/schedules/latest", scheduleService.LatestSchedules)

	// 🔒 Gym master and set schedules are admin-managed
	admin.Post("/gyms", gymService.CreateGym)
	admin.Put("/gyms/:name", gymService.UpdateGym)
	admin.Delete("/gyms/:name", gymService.DeleteGym)
	admin.Post("/gyms/:name/photo", gymService.UploadPhoto)

	admin.Post("/schedules", scheduleService.CreateSchedule)
	admin.Put("/schedules/:id", scheduleService.UpdateSchedule)
	admin.Delete("/schedules/:id", scheduleService.DeleteSchedule)
}
