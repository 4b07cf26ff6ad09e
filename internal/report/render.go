package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const maxBarWidth = 40

var (
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	labelStyle  = lipgloss.NewStyle().Width(14)
	amountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	pctStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// RenderCategoryBreakdown renders category totals as a textual bar chart,
// largest bucket first. Returns "" for an empty input; the caller owns the
// explicit "no data" message.
func RenderCategoryBreakdown(totals map[string]float64) string {
	if len(totals) == 0 {
		return ""
	}

	type slice struct {
		label string
		value float64
	}
	slices := make([]slice, 0, len(totals))
	var sum, max float64
	for label, value := range totals {
		slices = append(slices, slice{label, value})
		sum += value
		if value > max {
			max = value
		}
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].value != slices[j].value {
			return slices[i].value > slices[j].value
		}
		return slices[i].label < slices[j].label
	})

	var b strings.Builder
	for _, sl := range slices {
		bar := barOf(sl.value, max)
		pct := sl.value / sum * 100
		fmt.Fprintf(&b, "%s %s %s %s\n",
			labelStyle.Render(sl.label),
			barStyle.Render(bar),
			amountStyle.Render(fmt.Sprintf("%10.2f", sl.value)),
			pctStyle.Render(fmt.Sprintf("(%.1f%%)", pct)))
	}
	return b.String()
}

// RenderMonthlySeries renders a year's 12 monthly buckets as a bar chart.
func RenderMonthlySeries(year int, series [12]float64) string {
	var max float64
	for _, v := range series {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return ""
	}

	var b strings.Builder
	for i, v := range series {
		month := time.Month(i + 1).String()[:3]
		fmt.Fprintf(&b, "%s %d %s %s\n",
			labelStyle.Width(3).Render(month),
			year,
			barStyle.Render(barOf(v, max)),
			amountStyle.Render(fmt.Sprintf("%10.2f", v)))
	}
	return b.String()
}

// RenderTrend renders month-by-month totals in chronological order.
func RenderTrend(points []TrendPoint) string {
	if len(points) == 0 {
		return ""
	}

	var max float64
	for _, p := range points {
		if p.Total > max {
			max = p.Total
		}
	}

	var b strings.Builder
	for _, p := range points {
		fmt.Fprintf(&b, "%s %s %s\n",
			labelStyle.Width(7).Render(p.MonthYear),
			barStyle.Render(barOf(p.Total, max)),
			amountStyle.Render(fmt.Sprintf("%10.2f", p.Total)))
	}
	return b.String()
}

func barOf(value, max float64) string {
	if max <= 0 {
		return ""
	}
	width := int(value / max * maxBarWidth)
	if width == 0 && value > 0 {
		width = 1
	}
	return strings.Repeat("█", width)
}
