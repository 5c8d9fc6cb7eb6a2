package services

import (
	"testing"
	"time"

	"boulder-session-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

func utc(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

func TestWindowDates(t *testing.T) {
	dates := WindowDates("2024-03-02", 3)
	assert.Equal(t, []string{"2024-02-29", "2024-03-01", "2024-03-02"}, dates)
	assert.Empty(t, WindowDates("2024-03-02", 0))
	assert.Empty(t, WindowDates("2024-03-02", -4))
	assert.Empty(t, WindowDates("bogus", 3))
}

func TestDailyCountsDenseWindow(t *testing.T) {
	counts := DailyCounts(nil, "2024-05-14", 14, jst)
	require.Len(t, counts, 14)
	assert.Equal(t, "2024-05-01", counts[0].Date)
	assert.Equal(t, "2024-05-14", counts[13].Date)
	for _, c := range counts {
		assert.Zero(t, c.Count)
	}

	sparse := []time.Time{utc("2024-05-05T03:00:00Z"), utc("2023-01-01T00:00:00Z")}
	counts = DailyCounts(sparse, "2024-05-14", 14, jst)
	require.Len(t, counts, 14)
	assert.Equal(t, 1, counts[4].Count)
}

func TestDailyCountsBucketsInLocation(t *testing.T) {
	times := []time.Time{
		utc("2024-04-30T14:59:00Z"), // 23:59 on the 30th in Tokyo
		utc("2024-04-30T15:00:00Z"), // midnight on the 1st in Tokyo
	}
	counts := DailyCounts(times, "2024-05-01", 2, jst)
	assert.Equal(t, []models.DailyCount{
		{Date: "2024-04-30", Count: 1},
		{Date: "2024-05-01", Count: 1},
	}, counts)

	counts = DailyCounts(times, "2024-05-01", 2, time.UTC)
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, 0, counts[1].Count)
}

func TestGroupCountsTiesKeepFirstSeen(t *testing.T) {
	got := GroupCounts([]string{"/logs", "/gyms", "/gyms", "/me", "/logs", "/graph"})
	assert.Equal(t, []models.GroupCount{
		{Key: "/logs", Count: 2},
		{Key: "/gyms", Count: 2},
		{Key: "/me", Count: 1},
		{Key: "/graph", Count: 1},
	}, got)
	assert.Empty(t, GroupCounts(nil))
}

func TestBuildAnalyticsReport(t *testing.T) {
	logins := []models.LoginEvent{
		{UserName: "alice", CreatedAt: utc("2024-04-30T15:00:00Z")},
		{UserName: "alice", CreatedAt: utc("2024-04-30T14:59:00Z")},
		{UserName: "bob", CreatedAt: utc("2024-05-13T16:00:00Z")},
		{UserName: "alice", CreatedAt: utc("2024-05-10T01:00:00Z")},
		{UserName: "carol", CreatedAt: utc("2024-04-20T00:00:00Z")},
		{UserName: "dave", CreatedAt: utc("2024-03-01T00:00:00Z")},
	}
	views := []models.PageViewEvent{
		{UserName: "alice", Page: "/gyms", CreatedAt: utc("2024-05-10T01:00:00Z")},
		{UserName: "alice", Page: "/gyms", Action: strPtr(ActionPlanCreated), CreatedAt: utc("2024-05-10T02:00:00Z")},
		{UserName: "bob", Page: "/logs", CreatedAt: utc("2024-05-13T16:00:00Z")},
		{UserName: "erin", Page: "/gyms", CreatedAt: utc("2024-05-11T00:00:00Z")},
		{UserName: "bob", Page: "/logs", CreatedAt: utc("2024-04-01T00:00:00Z")},
	}

	report := BuildAnalyticsReport(logins, views, "2024-05-14", 14, jst)

	assert.Equal(t, 14, report.Days)
	assert.Equal(t, "2024-05-14", report.AsOf)
	require.Len(t, report.DailyLogins, 14)
	require.Len(t, report.DailyPageViews, 14)
	assert.Equal(t, 1, report.DailyLogins[0].Count, "midnight Tokyo belongs to the 1st")
	assert.Equal(t, 1, report.DailyLogins[9].Count)
	assert.Equal(t, 1, report.DailyLogins[13].Count)
	total := 0
	for _, d := range report.DailyLogins {
		total += d.Count
	}
	assert.Equal(t, 3, total)

	assert.Equal(t, []models.GroupCount{{Key: "/gyms", Count: 3}, {Key: "/logs", Count: 1}}, report.ByPage)
	assert.Equal(t, []models.GroupCount{{Key: ActionPlanCreated, Count: 1}}, report.ByAction)

	assert.Equal(t, []models.UserActivity{
		{UserName: "alice", Logins: 2, PageViews: 2, Actions: 1},
		{UserName: "bob", Logins: 1, PageViews: 1, Actions: 0},
		{UserName: "erin", Logins: 0, PageViews: 1, Actions: 0},
	}, report.Users)

	assert.Equal(t, 3, report.ActiveUsers30d)
	assert.Equal(t, 2, report.ActiveUsers7d)
}

func TestUserRollupKeepsAdminActor(t *testing.T) {
	views := []models.PageViewEvent{
		{UserName: AdminActor, Page: "/schedules", Action: strPtr(ActionScheduleCreated)},
	}
	rows := UserRollup([]models.LoginEvent{{UserName: "alice"}}, views)
	assert.Equal(t, []models.UserActivity{
		{UserName: "alice", Logins: 1},
		{UserName: AdminActor, PageViews: 1, Actions: 1},
	}, rows)
}

func TestBuildAnalyticsReportEmpty(t *testing.T) {
	report := BuildAnalyticsReport(nil, nil, "2024-05-14", 14, jst)
	assert.Len(t, report.DailyLogins, 14)
	assert.Empty(t, report.ByPage)
	assert.Empty(t, report.ByAction)
	assert.Empty(t, report.Users)
	assert.Zero(t, report.ActiveUsers30d)
	assert.Zero(t, report.ActiveUsers7d)
}
