// services/ranking.go
package services

import (
	"sort"

	"boulder-session-system/models"
	"boulder-session-system/utils"
)

// RankInput is everything the gym list views need besides the gyms themselves.
// TargetDate is the date being planned for, not necessarily today.
type RankInput struct {
	Score      ScoreInput
	TargetDate string
	Origin     *models.GeoPoint
}

// BuildGymMeta computes the per-gym sort keys once.
func BuildGymMeta(gyms []models.Gym, in RankInput) []models.GymWithMeta {
	metas := make([]models.GymWithMeta, 0, len(gyms))
	for _, g := range gyms {
		meta := models.GymWithMeta{
			Gym:        g,
			DistanceKm: utils.DistanceToGym(in.Origin, g),
			Score:      ScoreGym(g.GymName, in.TargetDate, in.Score),
		}

		if sched := LatestSchedule(g.GymName, in.Score.Schedules); sched != nil {
			s := *sched
			meta.LatestSchedule = &s
			if age, ok := utils.DaysBetween(s.StartDate, in.TargetDate); ok {
				meta.SetAge = &age
			}
		}

		if last := LastActualVisit(g.GymName, in.Score.Mine); last != "" {
			meta.LastVisit = &last
			if days, ok := utils.DaysBetween(last, in.TargetDate); ok {
				meta.LastVisitDays = &days
			}
		}

		metas = append(metas, meta)
	}
	return metas
}

// RankGyms orders gyms for one of the list views. Gyms missing the sort key
// of the mode land in Secondary in input order, except for distance where
// unknown distances sort last within Primary.
func RankGyms(gyms []models.Gym, in RankInput, mode models.RankMode) models.RankedGyms {
	metas := BuildGymMeta(gyms, in)
	result := models.RankedGyms{
		Primary:   []models.GymWithMeta{},
		Secondary: []models.GymWithMeta{},
	}

	switch mode {
	case models.RankByFreshSet:
		for _, m := range metas {
			if m.LatestSchedule != nil && m.SetAge != nil {
				result.Primary = append(result.Primary, m)
			} else {
				result.Secondary = append(result.Secondary, m)
			}
		}
		sort.SliceStable(result.Primary, func(i, j int) bool {
			return *result.Primary[i].SetAge < *result.Primary[j].SetAge
		})

	case models.RankByOverdue:
		for _, m := range metas {
			if m.LastVisitDays != nil {
				result.Primary = append(result.Primary, m)
			} else {
				result.Secondary = append(result.Secondary, m)
			}
		}
		sort.SliceStable(result.Primary, func(i, j int) bool {
			return *result.Primary[i].LastVisitDays > *result.Primary[j].LastVisitDays
		})

	default:
		result.Primary = append(result.Primary, metas...)
		sort.SliceStable(result.Primary, func(i, j int) bool {
			a, b := result.Primary[i].DistanceKm, result.Primary[j].DistanceKm
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return *a < *b
		})
	}

	return result
}
