package models

import "time"

// LoginEvent and PageViewEvent are the analytics inputs, decoupled from the
// stored AccessLog/PageView rows.
type LoginEvent struct {
	UserName  string
	CreatedAt time.Time
}

type PageViewEvent struct {
	UserName  string
	Page      string
	Action    *string
	CreatedAt time.Time
}

// DailyCount is one zero-filled day in a trailing window.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// GroupCount is a categorical key with its count.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// UserActivity is the per-user rollup row.
type UserActivity struct {
	UserName  string `json:"user_name"`
	Logins    int    `json:"logins"`
	PageViews int    `json:"page_views"`
	Actions   int    `json:"actions"`
}

// AnalyticsReport is the admin dashboard payload.
type AnalyticsReport struct {
	Days           int            `json:"days"`
	AsOf           string         `json:"as_of"`
	DailyLogins    []DailyCount   `json:"daily_logins"`
	DailyPageViews []DailyCount   `json:"daily_page_views"`
	ByPage         []GroupCount   `json:"by_page"`
	ByAction       []GroupCount   `json:"by_action"`
	Users          []UserActivity `json:"users"`
	ActiveUsers30d int            `json:"active_users_30d"`
	ActiveUsers7d  int            `json:"active_users_7d"`
}
