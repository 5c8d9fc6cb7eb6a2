// services/announcements.go
package services

import (
	"boulder-session-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncementService struct {
	DB       *gorm.DB
	Clock    Clock
	Activity *ActivityService
}

func NewAnnouncementService(db *gorm.DB, clock Clock, activity *ActivityService) *AnnouncementService {
	return &AnnouncementService{DB: db, Clock: clock, Activity: activity}
}

// ActiveAnnouncements returns notices whose display_until is today or later.
func (s *AnnouncementService) ActiveAnnouncements(c *fiber.Ctx) error {
	var items []models.Announcement
	if err := s.DB.Where("display_until >= ?", s.Clock.Today()).
		Order("created_at DESC").Find(&items).Error; err != nil {
		return storeFailure(c, "list announcements", err)
	}
	return c.JSON(items)
}

type announcementRequest struct {
	Content      string `json:"content" validate:"required,max=2000"`
	DisplayUntil string `json:"display_until" validate:"required,civildate"`
}

// CreateAnnouncement posts a notice as the caller.
func (s *AnnouncementService) CreateAnnouncement(c *fiber.Ctx) error {
	var req announcementRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	if req.DisplayUntil < s.Clock.Today() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "display_until is in the past"})
	}
	item := models.Announcement{
		ID:           uuid.NewString(),
		Content:      req.Content,
		DisplayUntil: req.DisplayUntil,
		CreatedBy:    currentUser(c),
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return storeFailure(c, "create announcement", err)
	}
	s.Activity.RecordAction(item.CreatedBy, "/announcements", ActionAnnouncementPosted)
	return c.Status(fiber.StatusCreated).JSON(item)
}

// DeleteAnnouncement removes a notice; only its author may.
func (s *AnnouncementService) DeleteAnnouncement(c *fiber.Ctx) error {
	var item models.Announcement
	if err := s.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
		return notFoundOr(c, "announcement", "delete announcement", err)
	}
	if item.CreatedBy != currentUser(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not your announcement"})
	}
	if err := s.DB.Delete(&item).Error; err != nil {
		return storeFailure(c, "delete announcement", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
