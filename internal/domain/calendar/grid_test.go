package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name          string
		year          int
		month         time.Month
		expectedStart time.Time
		daysInMonth   int
	}{
		{
			name:          "Month starting on a Sunday",
			year:          2026,
			month:         time.February,
			expectedStart: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			daysInMonth:   28,
		},
		{
			name:          "Month starting mid-week pads back to Sunday",
			year:          2026,
			month:         time.September,
			expectedStart: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			daysInMonth:   30,
		},
		{
			name:          "Leap February",
			year:          2024,
			month:         time.February,
			expectedStart: time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC),
			daysInMonth:   29,
		},
		{
			name:          "December wraps into next year",
			year:          2025,
			month:         time.December,
			expectedStart: time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
			daysInMonth:   31,
		},
	}

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := MonthGrid(tt.year, tt.month, now)

			require.Len(t, days, MonthGridSize)
			assert.Equal(t, time.Sunday, days[0].Date.Weekday())
			assert.Equal(t, tt.expectedStart, days[0].Date)

			inMonth := 0
			for i, d := range days {
				if i > 0 {
					assert.Equal(t, days[i-1].Date.AddDate(0, 0, 1), d.Date, "days must be consecutive")
				}
				if d.IsCurrentMonth {
					inMonth++
				}
			}
			assert.Equal(t, tt.daysInMonth, inMonth)
		})
	}
}

func TestMonthGridTodayFlag(t *testing.T) {
	now := time.Date(2026, 9, 14, 18, 30, 0, 0, time.UTC)

	days := MonthGrid(2026, time.September, now)
	todayCount := 0
	for _, d := range days {
		if d.IsToday {
			todayCount++
			assert.Equal(t, now.Day(), d.Date.Day())
		}
	}
	assert.Equal(t, 1, todayCount, "exactly one cell is today when now falls inside the grid")

	// A grid far from now carries no today flag at all.
	days = MonthGrid(2020, time.January, now)
	for _, d := range days {
		assert.False(t, d.IsToday)
	}
}

func TestWeekGrid(t *testing.T) {
	now := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)

	// September 2, 2026 is a Wednesday; its week starts Sunday Aug 30.
	days := WeekGrid(now, now)
	require.Len(t, days, DaysInWeek)
	assert.Equal(t, time.Sunday, days[0].Date.Weekday())
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, time.Saturday, days[6].Date.Weekday())

	todayCount := 0
	for _, d := range days {
		if d.IsToday {
			todayCount++
		}
	}
	assert.Equal(t, 1, todayCount)
}
