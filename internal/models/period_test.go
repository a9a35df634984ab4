package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodStart(t *testing.T) {
	season := NewSeason("project-1", "Season 1", date(2025, 1, 15), date(2025, 12, 31))

	t.Run("Day strips the time component", func(t *testing.T) {
		at := time.Date(2025, 6, 18, 14, 30, 12, 0, time.UTC)
		start, err := PeriodStart(at, PeriodDay, season)
		assert.NoError(t, err)
		assert.Equal(t, date(2025, 6, 18), start)
	})

	t.Run("Week starts on Monday", func(t *testing.T) {
		testCases := []struct {
			name     string
			at       time.Time
			expected time.Time
		}{
			{"Wednesday", date(2025, 6, 18), date(2025, 6, 16)},
			{"Monday maps to itself", date(2025, 6, 16), date(2025, 6, 16)},
			{"Sunday belongs to the previous Monday", date(2025, 6, 22), date(2025, 6, 16)},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				start, err := PeriodStart(tc.at, PeriodWeek, season)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, start)
			})
		}
	})

	t.Run("Month starts on the first", func(t *testing.T) {
		start, err := PeriodStart(date(2025, 6, 18), PeriodMonth, season)
		assert.NoError(t, err)
		assert.Equal(t, date(2025, 6, 1), start)
	})

	t.Run("Season starts at the season start date", func(t *testing.T) {
		start, err := PeriodStart(date(2025, 6, 18), PeriodSeason, season)
		assert.NoError(t, err)
		assert.Equal(t, date(2025, 1, 15), start)
	})

	t.Run("Season period requires a season", func(t *testing.T) {
		_, err := PeriodStart(date(2025, 6, 18), PeriodSeason, nil)
		assert.Error(t, err)
	})
}

func TestPreviousPeriodStart(t *testing.T) {
	t.Run("Day", func(t *testing.T) {
		prev, ok := PreviousPeriodStart(date(2025, 6, 18), PeriodDay)
		assert.True(t, ok)
		assert.Equal(t, date(2025, 6, 17), prev)
	})

	t.Run("Week", func(t *testing.T) {
		prev, ok := PreviousPeriodStart(date(2025, 6, 16), PeriodWeek)
		assert.True(t, ok)
		assert.Equal(t, date(2025, 6, 9), prev)
	})

	t.Run("Month", func(t *testing.T) {
		prev, ok := PreviousPeriodStart(date(2025, 6, 1), PeriodMonth)
		assert.True(t, ok)
		assert.Equal(t, date(2025, 5, 1), prev)
	})

	t.Run("No previous period for season", func(t *testing.T) {
		_, ok := PreviousPeriodStart(date(2025, 1, 15), PeriodSeason)
		assert.False(t, ok)
	})
}

func TestMonthEnd(t *testing.T) {
	assert.Equal(t, date(2025, 7, 1), MonthEnd(date(2025, 6, 1)))
	assert.Equal(t, date(2026, 1, 1), MonthEnd(date(2025, 12, 1)))
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
