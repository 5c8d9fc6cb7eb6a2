// services/logs.go
package services

import (
	"errors"

	"boulder-session-system/models"
	"boulder-session-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogService handles plans and logged sessions.
type LogService struct {
	DB       *gorm.DB
	Clock    Clock
	Activity *ActivityService
}

func NewLogService(db *gorm.DB, clock Clock, activity *ActivityService) *LogService {
	return &LogService{DB: db, Clock: clock, Activity: activity}
}

// ListLogs supports ?from=&to=&user=&kind= filters; dates compare on the date prefix.
func (s *LogService) ListLogs(c *fiber.Ctx) error {
	q := s.DB.Model(&models.ClimbingLog{})

	if from := c.Query("from"); from != "" {
		if !utils.IsValidDate(from) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from (use YYYY-MM-DD)"})
		}
		q = q.Where("date >= ?", utils.DateOnly(from))
	}
	if to := c.Query("to"); to != "" {
		if !utils.IsValidDate(to) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to (use YYYY-MM-DD)"})
		}
		next, _ := utils.AddDays(to, 1)
		q = q.Where("date < ?", next)
	}
	if user := c.Query("user"); user != "" {
		q = q.Where("user_name = ?", user)
	}
	if kind := models.SessionKind(c.Query("kind")); kind != "" {
		if !kind.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid kind (use: plan, actual)"})
		}
		q = q.Where("kind = ?", kind)
	}
	if gym := c.Query("gym"); gym != "" {
		q = q.Where("gym_name = ?", utils.NormalizeGymName(gym))
	}

	var logs []models.ClimbingLog
	if err := q.Order("date DESC").Order("created_at DESC").Find(&logs).Error; err != nil {
		return storeFailure(c, "list logs", err)
	}
	return c.JSON(logs)
}

type createLogRequest struct {
	Date     string `json:"date" validate:"required,civildate"`
	GymName  string `json:"gym_name" validate:"required,max=128"`
	Kind     string `json:"kind" validate:"required,sessionkind"`
	TimeSlot string `json:"time_slot" validate:"omitempty,timeslot"`
}

// CreateLog records a plan or a completed session for the caller.
func (s *LogService) CreateLog(c *fiber.Ctx) error {
	var req createLogRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	gymName := utils.NormalizeGymName(req.GymName)
	if err := s.requireGym(gymName); err != nil {
		return notFoundOr(c, "gym", "create log", err)
	}

	slot := models.TimeSlot(req.TimeSlot)
	if slot == "" {
		slot = models.SlotNone
	}
	entry := models.ClimbingLog{
		ID:       uuid.NewString(),
		Date:     req.Date,
		GymName:  gymName,
		UserName: currentUser(c),
		Kind:     models.SessionKind(req.Kind),
		TimeSlot: slot,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return storeFailure(c, "create log", err)
	}

	recordsWritten.WithLabelValues(string(entry.Kind)).Inc()
	action := ActionLogCreated
	if entry.IsPlan() {
		action = ActionPlanCreated
	}
	s.Activity.RecordAction(entry.UserName, "/logs", action)
	return c.Status(fiber.StatusCreated).JSON(entry)
}

type updatePlanRequest struct {
	Date     *string `json:"date" validate:"omitempty,civildate"`
	GymName  *string `json:"gym_name" validate:"omitempty,max=128"`
	TimeSlot *string `json:"time_slot" validate:"omitempty,timeslot"`
}

// UpdatePlan edits the date, gym or time slot of the caller's own plan.
// Logged sessions are immutable.
func (s *LogService) UpdatePlan(c *fiber.Ctx) error {
	var req updatePlanRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	entry, err := s.ownedLog(c)
	if err != nil || entry == nil {
		return err
	}
	if !entry.IsPlan() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "only plans can be edited"})
	}

	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.GymName != nil {
		gymName := utils.NormalizeGymName(*req.GymName)
		if err := s.requireGym(gymName); err != nil {
			return notFoundOr(c, "gym", "update plan", err)
		}
		entry.GymName = gymName
	}
	if req.TimeSlot != nil {
		entry.TimeSlot = models.TimeSlot(*req.TimeSlot)
	}

	if err := s.DB.Save(entry).Error; err != nil {
		return storeFailure(c, "update plan", err)
	}
	s.Activity.RecordAction(entry.UserName, "/logs", ActionPlanUpdated)
	return c.JSON(entry)
}

// DeleteLog removes one of the caller's own logs.
func (s *LogService) DeleteLog(c *fiber.Ctx) error {
	entry, err := s.ownedLog(c)
	if err != nil || entry == nil {
		return err
	}
	if err := s.DB.Delete(entry).Error; err != nil {
		return storeFailure(c, "delete log", err)
	}
	s.Activity.RecordAction(entry.UserName, "/logs", ActionLogDeleted)
	return c.SendStatus(fiber.StatusNoContent)
}

// ownedLog loads :id and checks the caller owns it. A nil log means the
// response has already been written.
func (s *LogService) ownedLog(c *fiber.Ctx) (*models.ClimbingLog, error) {
	var entry models.ClimbingLog
	if err := s.DB.First(&entry, "id = ?", c.Params("id")).Error; err != nil {
		return nil, notFoundOr(c, "log", "load log", err)
	}
	if entry.UserName != currentUser(c) {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not your log"})
	}
	return &entry, nil
}

func (s *LogService) requireGym(gymName string) error {
	var count int64
	if err := s.DB.Model(&models.Gym{}).Where("gym_name = ?", gymName).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpcomingPlans lists plans from today on, for everyone.
func (s *LogService) UpcomingPlans(c *fiber.Ctx) error {
	var plans []models.ClimbingLog
	err := s.DB.Where("kind = ? AND date >= ?", models.KindPlan, s.Clock.Today()).
		Order("date").Order("user_name").
		Find(&plans).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeFailure(c, "list plans", err)
	}
	return c.JSON(plans)
}
