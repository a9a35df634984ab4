package models

import (
	"fmt"
	"time"
)

// PeriodType represents a time bucket over which player stats are aggregated
type PeriodType string

const (
	PeriodDay    PeriodType = "day"
	PeriodWeek   PeriodType = "week"
	PeriodMonth  PeriodType = "month"
	PeriodSeason PeriodType = "season"
)

// IsValid checks if the period type is one of the known buckets
func (p PeriodType) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodSeason:
		return true
	}
	return false
}

// TruncateToDay strips the time-of-day component in UTC
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PeriodStart returns the start date of the period containing t.
// Weeks start on Monday, months on the 1st. The season period starts
// at the season's start date regardless of t.
func PeriodStart(t time.Time, periodType PeriodType, season *Season) (time.Time, error) {
	day := TruncateToDay(t)
	switch periodType {
	case PeriodDay:
		return day, nil
	case PeriodWeek:
		// Monday-start week; Go counts Sunday as 0
		offset := int(day.Weekday()) - 1
		if offset < 0 {
			offset = 6
		}
		return day.AddDate(0, 0, -offset), nil
	case PeriodMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	case PeriodSeason:
		if season == nil {
			return time.Time{}, fmt.Errorf("season required for season period")
		}
		return TruncateToDay(season.StartAt), nil
	}
	return time.Time{}, fmt.Errorf("invalid period type: %s", periodType)
}

// PreviousPeriodStart returns the start of the period immediately before
// the one starting at periodStart. There is no previous period for the
// season bucket.
func PreviousPeriodStart(periodStart time.Time, periodType PeriodType) (time.Time, bool) {
	switch periodType {
	case PeriodDay:
		return periodStart.AddDate(0, 0, -1), true
	case PeriodWeek:
		return periodStart.AddDate(0, 0, -7), true
	case PeriodMonth:
		return periodStart.AddDate(0, -1, 0), true
	}
	return time.Time{}, false
}

// MonthEnd returns the first day of the month after monthStart
func MonthEnd(monthStart time.Time) time.Time {
	return monthStart.AddDate(0, 1, 0)
}
