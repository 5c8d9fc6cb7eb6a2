package models

// Gym is the master record for a bouldering gym. GymName is the join key for
// ClimbingLog and SetSchedule rows and must stay unique and stable.
type Gym struct {
	GymName    string   `gorm:"primaryKey" json:"gym_name"`
	Slug       string   `gorm:"uniqueIndex" json:"slug"`
	ProfileURL *string  `json:"profile_url,omitempty"`
	PhotoURL   *string  `json:"photo_url,omitempty"`
	AreaTag    string   `gorm:"index" json:"area_tag"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`

	Timestamps
}

// HasCoordinates is true only when both lat and lng are known.
func (g Gym) HasCoordinates() bool {
	return g.Lat != nil && g.Lng != nil
}

// GeoPoint is an optional origin for distance ranking.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
