package services

import (
	"boulder-session-system/models"
)

func plan(user, gym, date string) models.ClimbingLog {
	return models.ClimbingLog{ID: user + "-" + gym + "-" + date, Date: date, GymName: gym, UserName: user, Kind: models.KindPlan}
}

func actual(user, gym, date string) models.ClimbingLog {
	return models.ClimbingLog{ID: user + "-" + gym + "-" + date, Date: date, GymName: gym, UserName: user, Kind: models.KindActual}
}

func schedule(gym, start string) models.SetSchedule {
	return models.SetSchedule{ID: gym + "-" + start, GymName: gym, StartDate: start}
}

func gym(name string) models.Gym {
	return models.Gym{GymName: name, Slug: name}
}

func gymAt(name string, lat, lng float64) models.Gym {
	return models.Gym{GymName: name, Slug: name, Lat: &lat, Lng: &lng}
}

func gymNames(metas []models.GymWithMeta) []string {
	out := make([]string, 0, len(metas))
	for _, m := range metas {
		out = append(out, m.Gym.GymName)
	}
	return out
}
