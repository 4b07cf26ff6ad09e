package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// SetMonthlyBudget sets the overall budget for one month, replacing any
// budget already set for it.
func (s *Store) SetMonthlyBudget(ctx context.Context, monthYear string, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMonthKey(monthYear); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("budget amount cannot be negative: %v", amount)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO budgets (month_year, budget_amount)
		VALUES (?, ?)`,
		monthYear, amount)
	if err != nil {
		return fmt.Errorf("failed to set budget for %s: %w", monthYear, err)
	}

	slog.Debug("set monthly budget", "month_year", monthYear, "amount", amount)
	return nil
}

// GetMonthlyBudget returns the budget amount for a month. A month with no
// budget set yields 0.0; absence is data, not an error.
func (s *Store) GetMonthlyBudget(ctx context.Context, monthYear string) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateMonthKey(monthYear); err != nil {
		return 0, err
	}

	var amount float64
	err := s.db.QueryRowContext(ctx,
		"SELECT budget_amount FROM budgets WHERE month_year = ?",
		monthYear).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get budget for %s: %w", monthYear, err)
	}

	return amount, nil
}

// BudgetMonths returns every month with a budget row, newest first.
func (s *Store) BudgetMonths(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT month_year FROM budgets ORDER BY month_year DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query budget months: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var months []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan budget month: %w", err)
		}
		months = append(months, m)
	}

	return months, rows.Err()
}
