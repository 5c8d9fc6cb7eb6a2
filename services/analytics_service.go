// services/analytics_service.go
package services

import (
	"strconv"
	"time"

	"boulder-session-system/models"
	"boulder-session-system/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	DefaultAnalyticsDays = 14
	MaxAnalyticsDays     = 90
	// activeWindowDays is the widest window the report needs (active users, 30d).
	activeWindowDays = 30
)

type AnalyticsService struct {
	DB    *gorm.DB
	Clock Clock
}

func NewAnalyticsService(db *gorm.DB, clock Clock) *AnalyticsService {
	return &AnalyticsService{DB: db, Clock: clock}
}

// Report serves the admin dashboard for a trailing ?days= window.
func (s *AnalyticsService) Report(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(DefaultAnalyticsDays)))
	if err != nil || days <= 0 || days > MaxAnalyticsDays {
		days = DefaultAnalyticsDays
	}
	asOf := s.Clock.Today()

	// The store is queried a day wider than the window; civil bucketing in the
	// configured zone decides what actually counts.
	since := s.windowStart(asOf, max(days, activeWindowDays))

	var access []models.AccessLog
	if err := s.DB.Where("created_at >= ?", since).Find(&access).Error; err != nil {
		return storeFailure(c, "load access logs", err)
	}
	var views []models.PageView
	if err := s.DB.Where("created_at >= ?", s.windowStart(asOf, days)).Find(&views).Error; err != nil {
		return storeFailure(c, "load page views", err)
	}

	logins := make([]models.LoginEvent, 0, len(access))
	for _, a := range access {
		logins = append(logins, models.LoginEvent{UserName: a.UserName, CreatedAt: a.CreatedAt})
	}
	events := make([]models.PageViewEvent, 0, len(views))
	for _, v := range views {
		events = append(events, models.PageViewEvent{UserName: v.UserName, Page: v.Page, Action: v.Action, CreatedAt: v.CreatedAt})
	}

	start := time.Now()
	report := BuildAnalyticsReport(logins, events, asOf, days, s.Clock.Loc)
	observe("analytics_report", len(logins)+len(events), start)
	return c.JSON(report)
}

// windowStart is midnight, in the clock zone, of the day before the window opens.
func (s *AnalyticsService) windowStart(asOf string, days int) time.Time {
	first, err := utils.AddDays(asOf, -days)
	if err != nil {
		return time.Time{}
	}
	t, _ := time.ParseInLocation(utils.DateLayout, first, s.Clock.Loc)
	return t
}
