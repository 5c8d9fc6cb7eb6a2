// services/scheduler.go
package services

import (
	"fmt"
	"log"
	"time"

	"boulder-session-system/models"
	"boulder-session-system/utils"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// DefaultRetentionDays is how long set schedules and activity rows are kept.
const DefaultRetentionDays = 365

// RetentionService removes data that has aged out.
type RetentionService struct {
	DB            *gorm.DB
	Clock         Clock
	RetentionDays int
}

func NewRetentionService(db *gorm.DB, clock Clock, retentionDays int) *RetentionService {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &RetentionService{DB: db, Clock: clock, RetentionDays: retentionDays}
}

// RetentionCutoff is the first civil date that is still kept.
func RetentionCutoff(today string, retentionDays int) string {
	cutoff, err := utils.AddDays(today, -retentionDays)
	if err != nil {
		return ""
	}
	return cutoff
}

// Sweep deletes schedules that ended before the cutoff, announcements past
// their display date, and activity rows older than the cutoff.
func (s *RetentionService) Sweep() error {
	today := s.Clock.Today()
	cutoff := RetentionCutoff(today, s.RetentionDays)
	if cutoff == "" {
		return fmt.Errorf("invalid retention cutoff for %s", today)
	}
	cutoffTime, err := time.ParseInLocation(utils.DateLayout, cutoff, s.Clock.Loc)
	if err != nil {
		return fmt.Errorf("parse cutoff: %w", err)
	}

	steps := []struct {
		table string
		run   func() *gorm.DB
	}{
		{"set_schedules", func() *gorm.DB {
			// Schedules without an end date age out by their start date.
			return s.DB.Unscoped().
				Where("(end_date <> '' AND end_date < ?) OR (end_date = '' AND start_date < ?)", cutoff, cutoff).
				Delete(&models.SetSchedule{})
		}},
		{"announcements", func() *gorm.DB {
			return s.DB.Where("display_until < ?", today).Delete(&models.Announcement{})
		}},
		{"access_logs", func() *gorm.DB {
			return s.DB.Where("created_at < ?", cutoffTime).Delete(&models.AccessLog{})
		}},
		{"page_views", func() *gorm.DB {
			return s.DB.Where("created_at < ?", cutoffTime).Delete(&models.PageView{})
		}},
	}

	for _, step := range steps {
		res := step.run()
		if res.Error != nil {
			return fmt.Errorf("retention sweep on %s: %w", step.table, res.Error)
		}
		if res.RowsAffected > 0 {
			RetentionDeleted.WithLabelValues(step.table).Add(float64(res.RowsAffected))
			log.Printf("🧹 [RETENTION] removed %d rows from %s (cutoff %s)", res.RowsAffected, step.table, cutoff)
		}
	}
	return nil
}

// StartRetentionScheduler runs Sweep daily at 03:00 in the clock zone.
func (s *RetentionService) StartRetentionScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(s.Clock.Loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() {
			if err := s.Sweep(); err != nil {
				log.Printf("[Scheduler] %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("register retention job: %w", err)
	}

	sched.Start()
	log.Printf("✅ [SCHEDULER] retention sweep scheduled daily at 03:00 (%s, keep %d days)", s.Clock.Loc, s.RetentionDays)
	return sched, nil
}
