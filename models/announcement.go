package models

import "time"

// Announcement is a notice shown until DisplayUntil (inclusive, civil date).
type Announcement struct {
	ID           string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	DisplayUntil string    `gorm:"index;not null" json:"display_until"`
	CreatedBy    string    `gorm:"index;not null" json:"created_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
