// Package report turns fetched rows into chart-ready series. Everything here
// is a pure function of its inputs; the store is never touched.
package report

import (
	"sort"
	"strings"
	"unicode"

	"github.com/centsible/centsible/internal/model"
)

// OtherBucket is the synthetic slice small categories fold into.
const OtherBucket = "Other"

// MinSlicePercent is the share of the period total below which a category
// is folded into OtherBucket. A presentation rule, not a storage rule.
const MinSlicePercent = 2.0

// NormalizeCategory maps a stored category name to its reporting form:
// first rune upper, remainder lower. Two categories differing only in case
// are stored as distinct rows but merge into one reporting bucket.
func NormalizeCategory(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(strings.ToLower(name))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CategoryTotals groups expenses by normalized category and sums amounts.
// The sum over all buckets equals the sum over all rows.
func CategoryTotals(expenses []model.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range expenses {
		totals[NormalizeCategory(e.Category)] += e.Amount
	}
	return totals
}

// MonthlySeries sums expenses into exactly 12 buckets, January through
// December of the given year. Months with no expenses hold zero.
func MonthlySeries(expenses []model.Expense, year int) [12]float64 {
	var series [12]float64
	for _, e := range expenses {
		if e.Date.Year() != year {
			continue
		}
		series[int(e.Date.Month())-1] += e.Amount
	}
	return series
}

// TrendPoint is one month's total in a multi-month trend.
type TrendPoint struct {
	MonthYear string
	Total     float64
}

// Trend groups expenses by "YYYY-MM" and returns the buckets in
// chronological order.
func Trend(expenses []model.Expense) []TrendPoint {
	totals := make(map[string]float64)
	for _, e := range expenses {
		totals[e.MonthKey()] += e.Amount
	}

	points := make([]TrendPoint, 0, len(totals))
	for monthYear, total := range totals {
		points = append(points, TrendPoint{MonthYear: monthYear, Total: total})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].MonthYear < points[j].MonthYear
	})
	return points
}

// BudgetStatus describes one month's budget against its spending.
type BudgetStatus struct {
	Budget    float64
	Spent     float64
	Remaining float64
	OnTrack   bool
}

// NewBudgetStatus computes the remaining budget for a month. OnTrack is
// true while spending has not exceeded the budget.
func NewBudgetStatus(budget, spent float64) BudgetStatus {
	remaining := budget - spent
	return BudgetStatus{
		Budget:    budget,
		Spent:     spent,
		Remaining: remaining,
		OnTrack:   remaining >= 0,
	}
}

// TotalExpenses sums the amounts of a set of expense rows.
func TotalExpenses(expenses []model.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// TotalIncome sums the amounts of a set of income rows.
func TotalIncome(income []model.Income) float64 {
	var total float64
	for _, in := range income {
		total += in.Amount
	}
	return total
}

// NetBalance is income minus expenses over the same period.
func NetBalance(income []model.Income, expenses []model.Expense) float64 {
	return TotalIncome(income) - TotalExpenses(expenses)
}

// FoldSmallSlices merges every category below minPercent of the total into
// the Other bucket. Categories at or above the threshold pass through
// unchanged. An empty input returns an empty map.
func FoldSmallSlices(totals map[string]float64, minPercent float64) map[string]float64 {
	var sum float64
	for _, v := range totals {
		sum += v
	}
	if sum == 0 {
		return map[string]float64{}
	}

	folded := make(map[string]float64)
	var otherSum float64
	for label, value := range totals {
		if value/sum*100 >= minPercent {
			folded[label] = value
		} else {
			otherSum += value
		}
	}
	if otherSum > 0 {
		folded[OtherBucket] += otherSum
	}
	return folded
}
