// services/connection_service.go
package services

import (
	"time"

	"boulder-session-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ConnectionService serves the "climbed together" views.
type ConnectionService struct {
	DB    *gorm.DB
	Clock Clock
}

func NewConnectionService(db *gorm.DB, clock Clock) *ConnectionService {
	return &ConnectionService{DB: db, Clock: clock}
}

// edges builds the graph from Actual logs and also returns every log, since
// partner panels need plans too.
func (s *ConnectionService) edges() ([]models.Edge, []models.ClimbingLog, error) {
	var logs []models.ClimbingLog
	if err := s.DB.Find(&logs).Error; err != nil {
		return nil, nil, err
	}
	actual := make([]models.ClimbingLog, 0, len(logs))
	for _, l := range logs {
		if l.IsActual() {
			actual = append(actual, l)
		}
	}
	start := time.Now()
	edges := BuildEdges(actual)
	observe("build_edges", len(actual), start)
	return edges, logs, nil
}

// ListEdges returns the whole social graph.
func (s *ConnectionService) ListEdges(c *fiber.Ctx) error {
	edges, _, err := s.edges()
	if err != nil {
		return storeFailure(c, "build connections", err)
	}
	return c.JSON(edges)
}

// Ranking returns ?user='s partners (default: caller) by shared sessions.
func (s *ConnectionService) Ranking(c *fiber.Ctx) error {
	user := c.Query("user", currentUser(c))
	edges, _, err := s.edges()
	if err != nil {
		return storeFailure(c, "build connection ranking", err)
	}
	return c.JSON(fiber.Map{
		"user":     user,
		"partners": UserRanking(edges, user),
	})
}

// Partner returns the shared-history panel between the caller and :name.
func (s *ConnectionService) Partner(c *fiber.Ctx) error {
	me := currentUser(c)
	partner := c.Params("name")
	if partner == me {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "partner must be someone else"})
	}

	edges, logs, err := s.edges()
	if err != nil {
		return storeFailure(c, "build partner panel", err)
	}
	return c.JSON(BuildPartnerPanel(me, partner, s.Clock.Today(), logs, edges))
}
