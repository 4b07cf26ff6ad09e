package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/centsible/centsible/internal/model"
)

// ImportEntries records a batch of expenses and income in one atomic
// transaction, so a failed statement import never leaves a partial batch
// behind. Every record passes the same boundary validation as the
// single-row operations.
func (s *Store) ImportEntries(ctx context.Context, expenses []model.Expense, income []model.Income) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range expenses {
		if err := validateExpense(&expenses[i]); err != nil {
			return err
		}
	}
	for i := range income {
		if err := validateIncome(&income[i]); err != nil {
			return err
		}
	}

	total := len(expenses) + len(income)
	if total == 0 {
		return nil
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Recording entries..."),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range expenses {
		e := &expenses[i]
		result, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (date, category, amount, description)
			VALUES (?, ?, ?, ?)`,
			e.Date.Format(model.DateLayout), e.Category, e.Amount, e.Description)
		if err != nil {
			return fmt.Errorf("failed to record expense: %w", err)
		}
		if e.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get expense ID: %w", err)
		}
		_ = bar.Add(1)
	}

	for i := range income {
		in := &income[i]
		result, err := tx.ExecContext(ctx, `
			INSERT INTO income (date, source, amount, description)
			VALUES (?, ?, ?, ?)`,
			in.Date.Format(model.DateLayout), in.Source, in.Amount, in.Description)
		if err != nil {
			return fmt.Errorf("failed to record income: %w", err)
		}
		if in.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get income ID: %w", err)
		}
		_ = bar.Add(1)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entry batch: %w", err)
	}

	slog.Info("recorded entry batch", "expenses", len(expenses), "income", len(income))
	return nil
}
