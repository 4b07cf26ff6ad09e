package model

import "time"

// Income represents a single recorded income entry. Source plays the same
// role category does for expenses, but is free text with no category link.
type Income struct {
	Date        time.Time
	Source      string
	Description string
	Amount      float64
	ID          int64
}

// MonthKey returns the "YYYY-MM" key of the month the income falls in.
func (i Income) MonthKey() string {
	return FormatMonthKey(i.Date)
}
