// services/snapshot.go
package services

import (
	"context"
	"fmt"

	"boulder-session-system/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Snapshot is the read-only view of the store handed to the core for one request.
type Snapshot struct {
	Gyms      []models.Gym
	Schedules []models.SetSchedule
	Mine      []models.ClimbingLog // caller's Actual logs, all time
	Others    []models.ClimbingLog // everyone else's Plans on the target date
}

// SnapshotQuery selects what LoadSnapshot reads.
type SnapshotQuery struct {
	Me         string
	TargetDate string
}

// LoadSnapshot issues the independent reads in parallel. Any failure cancels
// the rest and is returned wrapped.
func LoadSnapshot(ctx context.Context, db *gorm.DB, q SnapshotQuery) (*Snapshot, error) {
	var snap Snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := db.WithContext(gCtx).Order("gym_name").Find(&snap.Gyms).Error; err != nil {
			return fmt.Errorf("load gyms: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := db.WithContext(gCtx).Order("start_date").Find(&snap.Schedules).Error; err != nil {
			return fmt.Errorf("load schedules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := db.WithContext(gCtx).
			Where("user_name = ? AND kind = ?", q.Me, models.KindActual).
			Order("date DESC").
			Find(&snap.Mine).Error
		if err != nil {
			return fmt.Errorf("load my logs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := db.WithContext(gCtx).
			Where("user_name <> ? AND kind = ? AND date LIKE ?", q.Me, models.KindPlan, q.TargetDate+"%").
			Find(&snap.Others).Error
		if err != nil {
			return fmt.Errorf("load friend plans: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if snap.Others == nil {
		snap.Others = []models.ClimbingLog{}
	}
	return &snap, nil
}

// ScoreInput adapts the snapshot to the scoring engine.
func (s *Snapshot) ScoreInput(me string) ScoreInput {
	return ScoreInput{
		Me:        me,
		Mine:      s.Mine,
		Schedules: s.Schedules,
		Friends:   s.Others,
	}
}
