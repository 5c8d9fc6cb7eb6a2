package models

// ReasonTag is a structured cause for a gym's recommendation score.
// Display strings live in Label so scoring never branches on text.
type ReasonTag string

const (
	ReasonFreshSet     ReasonTag = "fresh_set"
	ReasonSemiFreshSet ReasonTag = "semi_fresh_set"
	ReasonFriendsHere  ReasonTag = "friends_here"
	ReasonUnvisited    ReasonTag = "unvisited"
	ReasonOverdue      ReasonTag = "overdue"
)

var reasonLabels = map[ReasonTag]string{
	ReasonFreshSet:     "🔥 new set",
	ReasonSemiFreshSet: "✨ semi-fresh",
	ReasonFriendsHere:  "👥 friends here",
	ReasonUnvisited:    "🆕 unvisited",
	ReasonOverdue:      "⌛ overdue",
}

// Label returns the display string for the tag, or the raw tag if unknown.
func (r ReasonTag) Label() string {
	if l, ok := reasonLabels[r]; ok {
		return l
	}
	return string(r)
}

// ReasonLabels maps tags to display strings, preserving order.
func ReasonLabels(tags []ReasonTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Label()
	}
	return out
}

// GymScore is the recommendation result for one gym.
type GymScore struct {
	GymName string      `json:"gym_name"`
	Score   int         `json:"score"`
	Reasons []ReasonTag `json:"reasons"`
}

// HasReason reports whether tag is among the score's reasons.
func (s GymScore) HasReason(tag ReasonTag) bool {
	for _, r := range s.Reasons {
		if r == tag {
			return true
		}
	}
	return false
}

// RankMode selects one of the gym list views.
type RankMode string

const (
	RankByDistance RankMode = "distance"
	RankByFreshSet RankMode = "freshset"
	RankByOverdue  RankMode = "overdue"
)

func (m RankMode) Valid() bool {
	switch m {
	case RankByDistance, RankByFreshSet, RankByOverdue:
		return true
	}
	return false
}

// GymWithMeta is a gym plus everything the list views sort on. Pointer fields
// are nil when unknown; they are never zero-filled.
type GymWithMeta struct {
	Gym            Gym          `json:"gym"`
	DistanceKm     *float64     `json:"distance_km,omitempty"`
	LatestSchedule *SetSchedule `json:"latest_schedule,omitempty"`
	LastVisit      *string      `json:"last_visit,omitempty"`
	SetAge         *int         `json:"set_age,omitempty"`
	LastVisitDays  *int         `json:"last_visit_days,omitempty"`
	Score          GymScore     `json:"score"`
}

// RankedGyms is a sorted primary list plus the "no data" fallback bucket.
type RankedGyms struct {
	Primary   []GymWithMeta `json:"primary"`
	Secondary []GymWithMeta `json:"secondary"`
}
