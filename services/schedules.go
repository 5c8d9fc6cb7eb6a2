// services/schedules.go
package services

import (
	"boulder-session-system/models"
	"boulder-session-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleService manages route-set periods.
type ScheduleService struct {
	DB       *gorm.DB
	Clock    Clock
	Activity *ActivityService
}

func NewScheduleService(db *gorm.DB, clock Clock, activity *ActivityService) *ScheduleService {
	return &ScheduleService{DB: db, Clock: clock, Activity: activity}
}

// ListSchedules returns schedules newest first, optionally for one ?gym=.
func (s *ScheduleService) ListSchedules(c *fiber.Ctx) error {
	q := s.DB.Model(&models.SetSchedule{})
	if gym := c.Query("gym"); gym != "" {
		q = q.Where("gym_name = ?", utils.NormalizeGymName(gym))
	}
	var schedules []models.SetSchedule
	if err := q.Order("start_date DESC").Find(&schedules).Error; err != nil {
		return storeFailure(c, "list schedules", err)
	}
	return c.JSON(schedules)
}

type latestScheduleResponse struct {
	models.SetSchedule
	SetAge *int `json:"set_age,omitempty"`
}

// LatestSchedules returns each gym's latest schedule with its age as of ?date=.
func (s *ScheduleService) LatestSchedules(c *fiber.Ctx) error {
	date, ok := s.Clock.dateParam(c, "date")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date (use YYYY-MM-DD)"})
	}

	var gyms []models.Gym
	if err := s.DB.Order("gym_name").Find(&gyms).Error; err != nil {
		return storeFailure(c, "list latest schedules", err)
	}
	var schedules []models.SetSchedule
	if err := s.DB.Find(&schedules).Error; err != nil {
		return storeFailure(c, "list latest schedules", err)
	}

	out := []latestScheduleResponse{}
	for _, g := range gyms {
		latest := LatestSchedule(g.GymName, schedules)
		if latest == nil {
			continue
		}
		row := latestScheduleResponse{SetSchedule: *latest}
		if age, ok := utils.DaysBetween(latest.StartDate, date); ok {
			row.SetAge = &age
		}
		out = append(out, row)
	}
	return c.JSON(out)
}

type scheduleRequest struct {
	GymName   string  `json:"gym_name" validate:"required,max=128"`
	StartDate string  `json:"start_date" validate:"required,civildate"`
	EndDate   string  `json:"end_date" validate:"omitempty,civildate"`
	PostURL   *string `json:"post_url" validate:"omitempty,url"`
}

func (r scheduleRequest) validRange() bool {
	if r.EndDate == "" {
		return true
	}
	days, ok := utils.DaysBetween(r.StartDate, r.EndDate)
	return ok && days >= 0
}

// CreateSchedule adds a set period (admin).
func (s *ScheduleService) CreateSchedule(c *fiber.Ctx) error {
	var req scheduleRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	if !req.validRange() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must not be before start_date"})
	}

	gymName := utils.NormalizeGymName(req.GymName)
	var gym models.Gym
	if err := s.DB.First(&gym, "gym_name = ?", gymName).Error; err != nil {
		return notFoundOr(c, "gym", "create schedule", err)
	}

	schedule := models.SetSchedule{
		ID:        uuid.NewString(),
		GymName:   gymName,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		PostURL:   req.PostURL,
	}
	if err := s.DB.Create(&schedule).Error; err != nil {
		return storeFailure(c, "create schedule", err)
	}
	recordsWritten.WithLabelValues("schedule").Inc()
	s.Activity.RecordAction(AdminActor, "/schedules", ActionScheduleCreated)
	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// UpdateSchedule replaces a schedule's dates and post link (admin).
func (s *ScheduleService) UpdateSchedule(c *fiber.Ctx) error {
	var req scheduleRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	if !req.validRange() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must not be before start_date"})
	}

	var schedule models.SetSchedule
	if err := s.DB.First(&schedule, "id = ?", c.Params("id")).Error; err != nil {
		return notFoundOr(c, "schedule", "update schedule", err)
	}
	gymName := utils.NormalizeGymName(req.GymName)
	var gym models.Gym
	if err := s.DB.First(&gym, "gym_name = ?", gymName).Error; err != nil {
		return notFoundOr(c, "gym", "update schedule", err)
	}

	schedule.GymName = gymName
	schedule.StartDate = req.StartDate
	schedule.EndDate = req.EndDate
	schedule.PostURL = req.PostURL
	if err := s.DB.Save(&schedule).Error; err != nil {
		return storeFailure(c, "update schedule", err)
	}
	return c.JSON(schedule)
}

// DeleteSchedule removes a schedule (admin).
func (s *ScheduleService) DeleteSchedule(c *fiber.Ctx) error {
	res := s.DB.Unscoped().Where("id = ?", c.Params("id")).Delete(&models.SetSchedule{})
	if res.Error != nil {
		return storeFailure(c, "delete schedule", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "schedule not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
