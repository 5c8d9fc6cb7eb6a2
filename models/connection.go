package models

// EdgeSession is one date+gym at which both users of an edge were present.
type EdgeSession struct {
	Date    string `json:"date"`
	GymName string `json:"gym_name"`
}

// Edge is a derived "climbed together" relationship. UserA < UserB lexically.
type Edge struct {
	UserA    string        `json:"user_a"`
	UserB    string        `json:"user_b"`
	Count    int           `json:"count"`
	Sessions []EdgeSession `json:"sessions"` // most recent first
}

// Touches reports whether user is one end of the edge.
func (e Edge) Touches(user string) bool {
	return e.UserA == user || e.UserB == user
}

// Other returns the opposite end of the edge from user.
func (e Edge) Other(user string) string {
	if e.UserA == user {
		return e.UserB
	}
	return e.UserA
}

// RankedPartner is an entry in a user's personal "climbed together" ranking.
type RankedPartner struct {
	Partner  string        `json:"partner"`
	Count    int           `json:"count"`
	Sessions []EdgeSession `json:"sessions"`
}

// GymVisitCount is a gym with how many times it was visited.
type GymVisitCount struct {
	GymName string `json:"gym_name"`
	Count   int    `json:"count"`
}

// PartnerPanel summarizes the shared history between two users.
type PartnerPanel struct {
	Me            string         `json:"me"`
	Partner       string         `json:"partner"`
	SharedCount   int            `json:"shared_count"`
	NextPlan      *ClimbingLog   `json:"next_plan,omitempty"`
	LastShared    *EdgeSession   `json:"last_shared,omitempty"`
	MyTopGym      *GymVisitCount `json:"my_top_gym,omitempty"`
	PartnerTopGym *GymVisitCount `json:"partner_top_gym,omitempty"`
	JointTopGym   *GymVisitCount `json:"joint_top_gym,omitempty"`
}
