package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/model"
)

// ExpenseFilter narrows a FetchExpenses query. Every present field ANDs an
// additional predicate onto the base all-rows query:
//
//   - StartDate / EndDate bound the date column (inclusive).
//   - Category matches exactly; the "All Categories" sentinel disables it.
//   - Year matches the year projection of the date; "All Years" disables it.
//   - MonthYear matches the "YYYY-MM" projection of the date.
//   - Keyword is a substring match against description OR category.
//
// The zero filter returns all rows.
type ExpenseFilter struct {
	StartDate string
	EndDate   string
	Category  string
	Year      string
	MonthYear string
	Keyword   string
}

// AddExpense inserts one expense row and sets its assigned id.
func (s *Store) AddExpense(ctx context.Context, e *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(e); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (date, category, amount, description)
		VALUES (?, ?, ?, ?)`,
		e.Date.Format(model.DateLayout), e.Category, e.Amount, e.Description)
	if err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get expense ID: %w", err)
	}
	e.ID = id

	slog.Debug("added expense", "id", id, "category", e.Category, "amount", e.Amount)
	return nil
}

// FetchExpenses returns expense rows matching the filter, most recent first.
func (s *Store) FetchExpenses(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, date, category, amount, description FROM expenses WHERE 1=1`
	var params []any

	if filter.StartDate != "" {
		query += " AND date >= ?"
		params = append(params, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += " AND date <= ?"
		params = append(params, filter.EndDate)
	}
	if filter.Category != "" && filter.Category != model.AllCategories {
		query += " AND category = ?"
		params = append(params, filter.Category)
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
		query += " AND (description LIKE ? OR category LIKE ?)"
		pattern := "%" + filter.Keyword + "%"
		params = append(params, pattern, pattern)
	}

	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var date string
		if err := rows.Scan(&e.ID, &date, &e.Category, &e.Amount, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date, err = model.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored expense date: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("fetched expenses", "count", len(expenses))
	return expenses, nil
}

// FetchExpensesByMonth returns all expenses falling in the "YYYY-MM" month.
func (s *Store) FetchExpensesByMonth(ctx context.Context, monthYear string) ([]model.Expense, error) {
	return s.FetchExpenses(ctx, ExpenseFilter{MonthYear: monthYear})
}

// UpdateExpense overwrites every field of the row identified by e.ID.
// Returns common.ErrNotFound when no row has that id.
func (s *Store) UpdateExpense(ctx context.Context, e model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(&e); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET date = ?, category = ?, amount = ?, description = ?
		WHERE id = ?`,
		e.Date.Format(model.DateLayout), e.Category, e.Amount, e.Description, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: expense %d", common.ErrNotFound, e.ID)
	}

	return nil
}

// DeleteExpense removes one row by id. Returns common.ErrNotFound when no
// row has that id.
func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: expense %d", common.ErrNotFound, id)
	}

	slog.Debug("deleted expense", "id", id)
	return nil
}

// ExpenseYears returns the distinct years with at least one expense,
// most recent first.
func (s *Store) ExpenseYears(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.distinctYears(ctx, "expenses")
}

func (s *Store) distinctYears(ctx context.Context, table string) ([]string, error) {
	// table is one of the fixed names below, never caller input.
	var query string
	switch table {
	case "expenses":
		query = "SELECT DISTINCT STRFTIME('%Y', date) FROM expenses ORDER BY 1 DESC"
	case "income":
		query = "SELECT DISTINCT STRFTIME('%Y', date) FROM income ORDER BY 1 DESC"
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s years: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var years []string
	for rows.Next() {
		var year string
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, year)
	}

	return years, rows.Err()
}
