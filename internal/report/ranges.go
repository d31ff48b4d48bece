// Package report holds the pure aggregation utilities behind the sales
// report screen: date-range presets, display formatting and CSV rendering.
package report

import "time"

// TodayRange returns the [start, end) boundaries of the current day in
// local time.
func TodayRange() (time.Time, time.Time) {
	return todayRangeAt(time.Now())
}

// WeekRange returns the [start, end) boundaries of the current ISO week
// (Monday start) in local time.
func WeekRange() (time.Time, time.Time) {
	return weekRangeAt(time.Now())
}

// MonthRange returns the [start, end) boundaries of the current calendar
// month in local time.
func MonthRange() (time.Time, time.Time) {
	return monthRangeAt(time.Now())
}

func todayRangeAt(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

func weekRangeAt(now time.Time) (time.Time, time.Time) {
	// Monday start; Sunday belongs to the week that began six days earlier.
	offset := int(now.Weekday()) - int(time.Monday)
	if now.Weekday() == time.Sunday {
		offset = 6
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

func monthRangeAt(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}
