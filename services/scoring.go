// services/scoring.go
package services

import (
	"sort"
	"strings"

	"boulder-session-system/models"
	"boulder-session-system/utils"
)

// Scoring thresholds and weights (days / points).
const (
	FreshDays         = 7
	SemiFreshDays     = 14
	OverdueDays       = 30
	FreshScore        = 40
	SemiFreshScore    = 30
	FriendsScore      = 15
	UnvisitedScore    = 10
	OverdueScore      = 20
	ClimbedSetPenalty = 50
)

// ScoreInput is the snapshot a gym is scored against. Me is the caller.
// When Friends is nil, friend plans are taken from All (every log not owned by Me).
type ScoreInput struct {
	Me        string
	All       []models.ClimbingLog
	Mine      []models.ClimbingLog
	Schedules []models.SetSchedule
	Friends   []models.ClimbingLog
}

func (in ScoreInput) friendLogs() []models.ClimbingLog {
	if in.Friends != nil {
		return in.Friends
	}
	var out []models.ClimbingLog
	for _, l := range in.All {
		if l.UserName != in.Me {
			out = append(out, l)
		}
	}
	return out
}

// LatestSchedule returns the gym's schedule with the greatest StartDate, or nil.
// Ties keep the first one seen.
func LatestSchedule(gymName string, schedules []models.SetSchedule) *models.SetSchedule {
	var latest *models.SetSchedule
	for i := range schedules {
		s := &schedules[i]
		if s.GymName != gymName {
			continue
		}
		if latest == nil || utils.DateOnly(s.StartDate) > utils.DateOnly(latest.StartDate) {
			latest = s
		}
	}
	return latest
}

// LastActualVisit returns the most recent Actual date (date part only) for
// gymName among logs, or "" if there is none.
func LastActualVisit(gymName string, logs []models.ClimbingLog) string {
	last := ""
	for _, l := range logs {
		if !l.IsActual() || l.GymName != gymName {
			continue
		}
		if d := utils.DateOnly(l.Date); d > last {
			last = d
		}
	}
	return last
}

// FriendsPlanned reports whether anyone other than me has a Plan at gymName on date.
func FriendsPlanned(gymName, date, me string, logs []models.ClimbingLog) bool {
	for _, l := range logs {
		if l.IsPlan() && l.GymName == gymName && l.UserName != me && strings.HasPrefix(l.Date, date) {
			return true
		}
	}
	return false
}

// ScoreGym computes the recommendation score of one gym as of asOfDate.
// Scores are not floored; the climbed-this-set penalty can make them negative.
func ScoreGym(gymName, asOfDate string, in ScoreInput) models.GymScore {
	result := models.GymScore{GymName: gymName, Reasons: []models.ReasonTag{}}
	lastVisit := LastActualVisit(gymName, in.Mine)

	if sched := LatestSchedule(gymName, in.Schedules); sched != nil {
		if setAge, ok := utils.DaysBetween(sched.StartDate, asOfDate); ok {
			switch {
			case setAge >= 0 && setAge <= FreshDays:
				result.Score += FreshScore
				result.Reasons = append(result.Reasons, models.ReasonFreshSet)
			case setAge > FreshDays && setAge <= SemiFreshDays:
				result.Score += SemiFreshScore
				result.Reasons = append(result.Reasons, models.ReasonSemiFreshSet)
			}

			if lastVisit != "" && lastVisit >= utils.DateOnly(sched.StartDate) && setAge <= SemiFreshDays {
				result.Score -= ClimbedSetPenalty
			}
		}
	}

	if FriendsPlanned(gymName, asOfDate, in.Me, in.friendLogs()) {
		result.Score += FriendsScore
		result.Reasons = append(result.Reasons, models.ReasonFriendsHere)
	}

	if lastVisit == "" {
		result.Score += UnvisitedScore
		result.Reasons = append(result.Reasons, models.ReasonUnvisited)
	} else if days, ok := utils.DaysBetween(lastVisit, asOfDate); ok && days >= OverdueDays {
		result.Score += OverdueScore
		result.Reasons = append(result.Reasons, models.ReasonOverdue)
	}

	return result
}

// ScoreGyms scores every gym and returns them sorted by score descending,
// ties in input order.
func ScoreGyms(gyms []models.Gym, asOfDate string, in ScoreInput) []models.GymScore {
	scores := make([]models.GymScore, 0, len(gyms))
	for _, g := range gyms {
		scores = append(scores, ScoreGym(g.GymName, asOfDate, in))
	}
	SortScores(scores)
	return scores
}

// SortScores stable-sorts by score descending.
func SortScores(scores []models.GymScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
}

// TopRecommendations keeps the first n strictly positive scores of an already
// sorted list. n <= 0 means no limit.
func TopRecommendations(sorted []models.GymScore, n int) []models.GymScore {
	out := []models.GymScore{}
	for _, s := range sorted {
		if s.Score <= 0 {
			continue
		}
		out = append(out, s)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
