package models

// SessionKind partitions climbing logs into forward-looking plans and logged sessions.
type SessionKind string

const (
	KindPlan   SessionKind = "plan"
	KindActual SessionKind = "actual"
)

// Valid reports whether k is one of the known kinds.
func (k SessionKind) Valid() bool {
	return k == KindPlan || k == KindActual
}

// TimeSlot is the coarse part of the day a session is planned for.
type TimeSlot string

const (
	SlotNoon    TimeSlot = "noon"
	SlotEvening TimeSlot = "evening"
	SlotNight   TimeSlot = "night"
	SlotNone    TimeSlot = "none"
)

func (s TimeSlot) Valid() bool {
	switch s {
	case SlotNoon, SlotEvening, SlotNight, SlotNone:
		return true
	}
	return false
}

// ClimbingLog is one user at one gym on one date, either planned or climbed.
// GymName references Gym.GymName; renaming a gym requires updating these rows too.
type ClimbingLog struct {
	ID       string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Date     string      `gorm:"index;not null" json:"date"` // YYYY-MM-DD, optionally with a time component
	GymName  string      `gorm:"index;not null" json:"gym_name"`
	UserName string      `gorm:"index;not null" json:"user_name"`
	Kind     SessionKind `gorm:"type:varchar(16);index;not null" json:"kind"`
	TimeSlot TimeSlot    `gorm:"type:varchar(16);default:'none'" json:"time_slot"`

	Timestamps
}

// IsPlan / IsActual keep callers from comparing raw strings.
func (l ClimbingLog) IsPlan() bool   { return l.Kind == KindPlan }
func (l ClimbingLog) IsActual() bool { return l.Kind == KindActual }
