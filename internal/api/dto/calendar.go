package dto

// MonthQuery selects the month view. Zero values default to the
// current month in the handler.
type MonthQuery struct {
	Year  int `form:"year" validate:"omitempty,min=1,max=9999"`
	Month int `form:"month" validate:"omitempty,min=1,max=12"`
}

// WeekQuery selects the week containing the given date, today when
// absent.
type WeekQuery struct {
	Date string `form:"date" validate:"omitempty,date_only"`
}
