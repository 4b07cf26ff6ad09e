package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/centsible/centsible/internal/common"
)

// ParseAmount parses a strictly positive decimal amount, as required for
// expenses and income. The store is never called when parsing fails.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", common.ErrInvalidAmount, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero, got %v", common.ErrInvalidAmount, v)
	}
	return v, nil
}

// ParseBudgetAmount parses a non-negative decimal amount. A zero budget is
// valid; it means no spending is allowed for the month.
func ParseBudgetAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", common.ErrInvalidAmount, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: budget cannot be negative, got %v", common.ErrInvalidAmount, v)
	}
	return v, nil
}

// RequireField rejects empty mandatory fields before they reach the store.
func RequireField(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingField, name)
	}
	return nil
}
