package model

// Budget is the overall spending limit for one calendar month. MonthYear is
// the natural key in "YYYY-MM" form; at most one row exists per month.
type Budget struct {
	MonthYear string
	Amount    float64
	ID        int64
}
