package models

// SetSchedule is a route-setting period at a gym. The latest schedule for a
// gym is the one with the greatest StartDate.
type SetSchedule struct {
	ID        string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	GymName   string  `gorm:"index;not null" json:"gym_name"`
	StartDate string  `gorm:"index;not null" json:"start_date"`
	EndDate   string  `gorm:"index" json:"end_date"`
	PostURL   *string `json:"post_url,omitempty"`

	Timestamps
}
