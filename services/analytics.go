// services/analytics.go
package services

import (
	"sort"
	"time"

	"boulder-session-system/models"
	"boulder-session-system/utils"
)

// WindowDates lists the civil dates of a trailing window ending on asOfDate,
// oldest first. days <= 0 yields an empty window.
func WindowDates(asOfDate string, days int) []string {
	out := make([]string, 0, max(days, 0))
	for i := days - 1; i >= 0; i-- {
		d, err := utils.AddDays(asOfDate, -i)
		if err != nil {
			return []string{}
		}
		out = append(out, d)
	}
	return out
}

// DailyCounts buckets timestamps by their civil date in loc and returns one
// entry for every day of the trailing window, zero-filled, oldest first.
func DailyCounts(times []time.Time, asOfDate string, days int, loc *time.Location) []models.DailyCount {
	dates := WindowDates(asOfDate, days)
	idx := make(map[string]int, len(dates))
	out := make([]models.DailyCount, len(dates))
	for i, d := range dates {
		idx[d] = i
		out[i] = models.DailyCount{Date: d}
	}
	for _, t := range times {
		if i, ok := idx[utils.CivilDate(t, loc)]; ok {
			out[i].Count++
		}
	}
	return out
}

// GroupCounts counts keys and sorts by count descending; ties keep the order
// in which keys first appeared.
func GroupCounts(keys []string) []models.GroupCount {
	order := []string{}
	counts := make(map[string]int)
	for _, k := range keys {
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]models.GroupCount, 0, len(order))
	for _, k := range order {
		out = append(out, models.GroupCount{Key: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// PageCounts groups page views by page.
func PageCounts(views []models.PageViewEvent) []models.GroupCount {
	keys := make([]string, 0, len(views))
	for _, v := range views {
		keys = append(keys, v.Page)
	}
	return GroupCounts(keys)
}

// ActionCounts groups page views that carry an action by that action.
func ActionCounts(views []models.PageViewEvent) []models.GroupCount {
	keys := []string{}
	for _, v := range views {
		if v.Action != nil {
			keys = append(keys, *v.Action)
		}
	}
	return GroupCounts(keys)
}

// UserRollup builds one row per user seen in either event set, sorted by
// logins descending. Actions counts only page views carrying an action.
func UserRollup(logins []models.LoginEvent, views []models.PageViewEvent) []models.UserActivity {
	order := []string{}
	rows := make(map[string]*models.UserActivity)
	row := func(user string) *models.UserActivity {
		r, ok := rows[user]
		if !ok {
			r = &models.UserActivity{UserName: user}
			rows[user] = r
			order = append(order, user)
		}
		return r
	}

	for _, l := range logins {
		row(l.UserName).Logins++
	}
	for _, v := range views {
		r := row(v.UserName)
		r.PageViews++
		if v.Action != nil {
			r.Actions++
		}
	}

	out := make([]models.UserActivity, 0, len(order))
	for _, u := range order {
		out = append(out, *rows[u])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Logins > out[j].Logins
	})
	return out
}

// DistinctUsers counts users with at least one login inside the trailing window.
func DistinctUsers(logins []models.LoginEvent, asOfDate string, days int, loc *time.Location) int {
	dates := WindowDates(asOfDate, days)
	if len(dates) == 0 {
		return 0
	}
	first, last := dates[0], dates[len(dates)-1]
	seen := make(map[string]struct{})
	for _, l := range logins {
		d := utils.CivilDate(l.CreatedAt, loc)
		if d >= first && d <= last {
			seen[l.UserName] = struct{}{}
		}
	}
	return len(seen)
}

// BuildAnalyticsReport assembles the admin dashboard for a trailing window.
// Events outside the window only contribute to the 30d/7d active-user counts.
func BuildAnalyticsReport(logins []models.LoginEvent, views []models.PageViewEvent, asOfDate string, days int, loc *time.Location) models.AnalyticsReport {
	dates := WindowDates(asOfDate, days)
	inWindow := func(t time.Time) bool {
		if len(dates) == 0 {
			return false
		}
		d := utils.CivilDate(t, loc)
		return d >= dates[0] && d <= dates[len(dates)-1]
	}

	var windowLogins []models.LoginEvent
	loginTimes := []time.Time{}
	for _, l := range logins {
		if inWindow(l.CreatedAt) {
			windowLogins = append(windowLogins, l)
			loginTimes = append(loginTimes, l.CreatedAt)
		}
	}
	var windowViews []models.PageViewEvent
	viewTimes := []time.Time{}
	for _, v := range views {
		if inWindow(v.CreatedAt) {
			windowViews = append(windowViews, v)
			viewTimes = append(viewTimes, v.CreatedAt)
		}
	}

	return models.AnalyticsReport{
		Days:           days,
		AsOf:           asOfDate,
		DailyLogins:    DailyCounts(loginTimes, asOfDate, days, loc),
		DailyPageViews: DailyCounts(viewTimes, asOfDate, days, loc),
		ByPage:         PageCounts(windowViews),
		ByAction:       ActionCounts(windowViews),
		Users:          UserRollup(windowLogins, windowViews),
		ActiveUsers30d: DistinctUsers(logins, asOfDate, 30, loc),
		ActiveUsers7d:  DistinctUsers(logins, asOfDate, 7, loc),
	}
}
