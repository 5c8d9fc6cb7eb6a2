// handlers/connections.go
package handlers

import (
	"boulder-session-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupConnectionRoutes(secured, admin fiber.Router, connectionService *services.ConnectionService, analyticsService *services.AnalyticsService) {
	secured.Get("/connections", connectionService.ListEdges)
	secured.Get("/connections/ranking", connectionService.Ranking)
	secured.Get("/connections/partner/:name", connectionService.Partner)

	admin.Get("/analytics", analyticsService.Report)
}
