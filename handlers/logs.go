// handlers/logs.go
package handlers

import (
	"boulder-session-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLogRoutes(secured fiber.Router, logService *services.LogService, announcementService *services.AnnouncementService) {
	secured.Get("/logs", logService.ListLogs)
	secured.Get("/plans/upcoming", logService.UpcomingPlans)
	secured.Post("/logs", logService.CreateLog)
	secured.Put("/logs/:id", logService.UpdatePlan)
	secured.Patch("/logs/:id", logService.UpdatePlan)
	secured.Delete("/logs/:id", logService.DeleteLog)

	secured.Get("/announcements", announcementService.ActiveAnnouncements)
	secured.Post("/announcements", announcementService.CreateAnnouncement)
	secured.Delete("/announcements/:id", announcementService.DeleteAnnouncement)
}
