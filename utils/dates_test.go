package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayUsesLocationNotUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-05-01 20:30 UTC is already May 2nd in Tokyo.
	now := time.Date(2024, 5, 1, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-05-02", Today(now, tokyo))
	assert.Equal(t, "2024-05-01", Today(now, time.UTC))
	assert.Equal(t, "2024-05-03", Tomorrow(now, tokyo))
	assert.Equal(t, "2024-04-30", DaysFromToday(now, tokyo, -2))
}

func TestDateOnly(t *testing.T) {
	cases := map[string]string{
		"2024-05-01":          "2024-05-01",
		"2024-05-01T19:00":    "2024-05-01",
		"2024-05-01 19:00:00": "2024-05-01",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, DateOnly(in), in)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
		ok   bool
	}{
		{"2024-05-01", "2024-05-08", 7, true},
		{"2024-05-08", "2024-05-01", -7, true},
		{"2024-02-28", "2024-03-01", 2, true},
		{"2024-03-09", "2024-03-11", 2, true},
		{"2024-05-01T23:59", "2024-05-02", 1, true},
		{"garbage", "2024-05-02", 0, false},
		{"2024-05-01", "", 0, false},
	}
	for _, tt := range tests {
		got, ok := DaysBetween(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "%s -> %s", tt.a, tt.b)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.a, tt.b)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-12-30", 3)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", got)

	got, err = AddDays("2024-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	_, err = AddDays("not-a-date", 1)
	assert.Error(t, err)
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, time.February)
	assert.Equal(t, "2024-02-01", first)
	assert.Equal(t, "2024-02-29", last)

	first, last = MonthRange(2023, time.December)
	assert.Equal(t, "2023-12-01", first)
	assert.Equal(t, "2023-12-31", last)
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-05-01"))
	assert.True(t, IsValidDate("2024-05-01T10:00"))
	assert.False(t, IsValidDate("2024-13-01"))
	assert.False(t, IsValidDate("05/01/2024"))
	assert.False(t, IsValidDate(""))
}

func TestIsValidDateRejectsTrailingText(t *testing.T) {
	valid := []string{"2024-05-01 19:00", "2024-05-01T19:00:30", "2024-05-01T19:00:00+09:00"}
	for _, s := range valid {
		assert.True(t, IsValidDate(s), s)
	}
	invalid := []string{"2024-05-01garbage", "2024-05-01T99:99", "2024-05-01 ; drop", "2024-05-01T", "2024-05-01 "}
	for _, s := range invalid {
		assert.False(t, IsValidDate(s), s)
	}
}

func TestLoadLocationFallsBack(t *testing.T) {
	loc := LoadLocation("Nowhere/Special")
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 9*60*60, offset)
}
