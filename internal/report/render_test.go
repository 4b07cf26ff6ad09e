package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCategoryBreakdown(t *testing.T) {
	out := RenderCategoryBreakdown(map[string]float64{
		"Food":      400.00,
		"Transport": 100.00,
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	// Largest bucket first.
	assert.Contains(t, lines[0], "Food")
	assert.Contains(t, lines[0], "400.00")
	assert.Contains(t, lines[0], "80.0%")
	assert.Contains(t, lines[1], "Transport")
	assert.Contains(t, lines[1], "20.0%")
}

func TestRenderCategoryBreakdown_Empty(t *testing.T) {
	assert.Equal(t, "", RenderCategoryBreakdown(nil))
	assert.Equal(t, "", RenderCategoryBreakdown(map[string]float64{}))
}

func TestRenderCategoryBreakdown_StableTieOrder(t *testing.T) {
	totals := map[string]float64{"Books": 50.00, "Gifts": 50.00}

	first := RenderCategoryBreakdown(totals)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RenderCategoryBreakdown(totals))
	}
	assert.Less(t, strings.Index(first, "Books"), strings.Index(first, "Gifts"))
}

func TestRenderMonthlySeries(t *testing.T) {
	var series [12]float64
	series[0] = 150.00
	series[11] = 300.00

	out := RenderMonthlySeries(2025, series)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 12)
	assert.Contains(t, lines[0], "Jan")
	assert.Contains(t, lines[0], "150.00")
	assert.Contains(t, lines[11], "Dec")
	assert.Contains(t, lines[11], "300.00")
	assert.Contains(t, lines[1], "0.00")
}

func TestRenderMonthlySeries_AllZero(t *testing.T) {
	var series [12]float64
	assert.Equal(t, "", RenderMonthlySeries(2025, series))
}

func TestRenderTrend(t *testing.T) {
	points := []TrendPoint{
		{MonthYear: "2025-01", Total: 150.00},
		{MonthYear: "2025-02", Total: 75.00},
	}

	out := RenderTrend(points)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "2025-01")
	assert.Contains(t, lines[1], "2025-02")

	assert.Equal(t, "", RenderTrend(nil))
}

func TestBarOf(t *testing.T) {
	assert.Equal(t, maxBarWidth, len([]rune(barOf(100, 100))))
	assert.Equal(t, maxBarWidth/2, len([]rune(barOf(50, 100))))
	// Tiny nonzero values still get a visible bar.
	assert.Equal(t, 1, len([]rune(barOf(0.1, 100))))
	assert.Equal(t, 0, len([]rune(barOf(0, 100))))
	assert.Equal(t, 0, len([]rune(barOf(5, 0))))
}
