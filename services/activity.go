// services/activity.go
package services

import (
	"log"

	"boulder-session-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action names recorded alongside page views.
const (
	ActionPlanCreated        = "plan_created"
	ActionPlanUpdated        = "plan_updated"
	ActionLogCreated         = "log_created"
	ActionLogDeleted         = "log_deleted"
	ActionScheduleCreated    = "schedule_created"
	ActionAnnouncementPosted = "announcement_posted"
)

// AdminActor is the user name recorded for actions taken through the admin token.
const AdminActor = "admin"

// ActivityService writes login and page-view events for analytics.
type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

// RecordLogin stores an access log row.
func (s *ActivityService) RecordLogin(userName string) error {
	return s.DB.Create(&models.AccessLog{ID: uuid.NewString(), UserName: userName}).Error
}

// RecordPageView stores a plain page visit.
func (s *ActivityService) RecordPageView(userName, page string) {
	s.record(userName, page, nil)
}

// RecordAction stores a page view carrying an action. Failures are logged only.
func (s *ActivityService) RecordAction(userName, page, action string) {
	s.record(userName, page, &action)
}

func (s *ActivityService) record(userName, page string, action *string) {
	if s == nil || userName == "" {
		return
	}
	pv := models.PageView{ID: uuid.NewString(), UserName: userName, Page: page, Action: action}
	if err := s.DB.Create(&pv).Error; err != nil {
		log.Printf("⚠️ [ACTIVITY] failed to record %s on %s for %s: %v", derefOr(action, "view"), page, userName, err)
	}
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
