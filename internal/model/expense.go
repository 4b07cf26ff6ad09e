// Package model defines the core domain types shared across the application.
package model

import "time"

// Expense represents a single recorded expense.
type Expense struct {
	Date        time.Time
	Category    string
	Description string
	Amount      float64
	ID          int64
}

// MonthKey returns the "YYYY-MM" key of the month the expense falls in.
func (e Expense) MonthKey() string {
	return FormatMonthKey(e.Date)
}
