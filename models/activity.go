package models

import "time"

// AccessLog records one login.
type AccessLog struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserName  string    `gorm:"index;not null" json:"user_name"`
	CreatedAt time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// PageView records a page visit, or an action taken on a page when Action is set.
type PageView struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserName  string    `gorm:"index;not null" json:"user_name"`
	Page      string    `gorm:"index;not null" json:"page"`
	Action    *string   `gorm:"index" json:"action,omitempty"`
	CreatedAt time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}
