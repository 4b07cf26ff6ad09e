// Package storage provides the data persistence layer for the application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/centsible/centsible/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidExpense   = errors.New("invalid expense")
	ErrInvalidIncome    = errors.New("invalid income")
	ErrInvalidMonthKey  = errors.New("invalid month key")
	ErrInvalidDateRange = errors.New("start date must be before end date")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateExpense checks the structural requirements of an expense record.
// Amount positivity is the caller's responsibility before this boundary.
func validateExpense(e *model.Expense) error {
	if e == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidExpense)
	}
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidExpense)
	}
	return nil
}

// validateIncome checks the structural requirements of an income record.
func validateIncome(in *model.Income) error {
	if in == nil {
		return fmt.Errorf("%w: income", ErrNilParameter)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidIncome)
	}
	if strings.TrimSpace(in.Source) == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidIncome)
	}
	return nil
}

// validateMonthKey ensures a "YYYY-MM" key parses as a real month.
func validateMonthKey(monthYear string) error {
	if _, err := model.ParseMonthKey(monthYear); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMonthKey, monthYear)
	}
	return nil
}
