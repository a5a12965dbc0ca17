package calendar

import "time"

// Day is one cell of a calendar view.
type Day struct {
	Date           time.Time `json:"date"`
	IsCurrentMonth bool      `json:"is_current_month"`
	IsToday        bool      `json:"is_today"`
}

// MonthGridSize is the fixed cell count of a month view: six full
// weeks, enough to hold any month at any weekday alignment.
const MonthGridSize = 42

// DaysInWeek is the cell count of a week view.
const DaysInWeek = 7

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// startOfDay truncates to midnight in the time's own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthGrid builds the 42-cell grid for the given month. The grid
// starts on the Sunday on or before the 1st, so leading and trailing
// cells belong to the adjacent months and carry IsCurrentMonth false.
// now supplies the reference for the IsToday flag.
func MonthGrid(year int, month time.Month, now time.Time) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	today := startOfDay(now)

	days := make([]Day, MonthGridSize)
	for i := range days {
		date := start.AddDate(0, 0, i)
		days[i] = Day{
			Date:           date,
			IsCurrentMonth: date.Month() == month && date.Year() == year,
			IsToday:        sameDay(date, today),
		}
	}
	return days
}

// WeekGrid builds the 7-cell week containing ref, starting on Sunday.
func WeekGrid(ref, now time.Time) []Day {
	refDay := startOfDay(ref.UTC())
	start := refDay.AddDate(0, 0, -int(refDay.Weekday()))
	today := startOfDay(now)

	days := make([]Day, DaysInWeek)
	for i := range days {
		date := start.AddDate(0, 0, i)
		days[i] = Day{
			Date:           date,
			IsCurrentMonth: date.Month() == ref.Month() && date.Year() == ref.Year(),
			IsToday:        sameDay(date, today),
		}
	}
	return days
}
