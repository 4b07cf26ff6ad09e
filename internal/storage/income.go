package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/model"
)

// IncomeFilter narrows a FetchIncome query the same way ExpenseFilter does
// for expenses. Source is a substring match rather than an exact one;
// income sources are free text with no backing table to pick exact values
// from.
type IncomeFilter struct {
	StartDate string
	EndDate   string
	Source    string
	Year      string
	MonthYear string
	Keyword   string
}

// AddIncome inserts one income row and sets its assigned id.
func (s *Store) AddIncome(ctx context.Context, in *model.Income) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateIncome(in); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO income (date, source, amount, description)
		VALUES (?, ?, ?, ?)`,
		in.Date.Format(model.DateLayout), in.Source, in.Amount, in.Description)
	if err != nil {
		return fmt.Errorf("failed to add income: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get income ID: %w", err)
	}
	in.ID = id

	slog.Debug("added income", "id", id, "source", in.Source, "amount", in.Amount)
	return nil
}

// FetchIncome returns income rows matching the filter, most recent first.
func (s *Store) FetchIncome(ctx context.Context, filter IncomeFilter) ([]model.Income, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, date, source, amount, description FROM income WHERE 1=1`
	var params []any

	if filter.StartDate != "" {
		query += " AND date >= ?"
		params = append(params, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += " AND date <= ?"
		params = append(params, filter.EndDate)
	}
	if filter.Source != "" {
		query += " AND source LIKE ?"
		params = append(params, "%"+filter.Source+"%")
	}
	if filter.Year != "" && filter.Year != model.AllYears {
		query += " AND STRFTIME('%Y', date) = ?"
		params = append(params, filter.Year)
	}
	if filter.MonthYear != "" {
		query += " AND STRFTIME('%Y-%m', date) = ?"
		params = append(params, filter.MonthYear)
	}
	if filter.Keyword != "" {
		query += " AND (description LIKE ? OR source LIKE ?)"
		pattern := "%" + filter.Keyword + "%"
		params = append(params, pattern, pattern)
	}

	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query income: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Income
	for rows.Next() {
		var in model.Income
		var date string
		if err := rows.Scan(&in.ID, &date, &in.Source, &in.Amount, &in.Description); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		in.Date, err = model.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored income date: %w", err)
		}
		entries = append(entries, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income: %w", err)
	}

	slog.Debug("fetched income", "count", len(entries))
	return entries, nil
}

// FetchIncomeByMonth returns all income falling in the "YYYY-MM" month.
func (s *Store) FetchIncomeByMonth(ctx context.Context, monthYear string) ([]model.Income, error) {
	return s.FetchIncome(ctx, IncomeFilter{MonthYear: monthYear})
}

// UpdateIncome overwrites every field of the row identified by in.ID.
// Returns common.ErrNotFound when no row has that id.
func (s *Store) UpdateIncome(ctx context.Context, in model.Income) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateIncome(&in); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE income
		SET date = ?, source = ?, amount = ?, description = ?
		WHERE id = ?`,
		in.Date.Format(model.DateLayout), in.Source, in.Amount, in.Description, in.ID)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: income %d", common.ErrNotFound, in.ID)
	}

	return nil
}

// DeleteIncome removes one row by id. Returns common.ErrNotFound when no
// row has that id.
func (s *Store) DeleteIncome(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM income WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: income %d", common.ErrNotFound, id)
	}

	slog.Debug("deleted income", "id", id)
	return nil
}

// IncomeYears returns the distinct years with at least one income entry,
// most recent first.
func (s *Store) IncomeYears(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.distinctYears(ctx, "income")
}
