package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ImportStats reports how many rows an import-merge applied per table.
type ImportStats struct {
	Expenses   int
	Income     int
	Categories int
	Budgets    int
}

// Total returns the number of rows applied across all tables.
func (st ImportStats) Total() int {
	return st.Expenses + st.Income + st.Categories + st.Budgets
}

// importedRow is a raw row read from the source database, kept as stored
// text so the merge preserves the source bytes exactly.
type importedRow struct {
	date        string
	text        string // category, source, or month_year depending on table
	description string
	amount      float64
	id          int64
}

// ImportMerge reads every row from another database file through a second,
// independent read-only connection and applies them to the live store in one
// atomic transaction: expenses, income, and budgets are inserted-or-replaced
// by id (colliding ids are overwritten), categories are inserted-or-ignored
// by name (existing categories win).
func (s *Store) ImportMerge(ctx context.Context, srcPath string) (ImportStats, error) {
	var stats ImportStats

	if err := validateContext(ctx); err != nil {
		return stats, err
	}
	if err := validateString(srcPath, "srcPath"); err != nil {
		return stats, err
	}
	if _, err := os.Stat(srcPath); err != nil {
		return stats, fmt.Errorf("failed to access import source: %w", err)
	}

	src, err := sql.Open("sqlite3", "file:"+srcPath+"?mode=ro")
	if err != nil {
		return stats, fmt.Errorf("failed to open import source: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			slog.Error("failed to close import source", "error", closeErr)
		}
	}()

	expenses, err := readEntryRows(ctx, src, "SELECT id, date, category, amount, description FROM expenses")
	if err != nil {
		return stats, err
	}
	income, err := readEntryRows(ctx, src, "SELECT id, date, source, amount, description FROM income")
	if err != nil {
		return stats, err
	}
	categories, err := readCategoryRows(ctx, src)
	if err != nil {
		return stats, err
	}
	budgets, err := readBudgetRows(ctx, src)
	if err != nil {
		return stats, err
	}

	total := len(expenses) + len(income) + len(categories) + len(budgets)
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Merging rows..."),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, row := range expenses {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO expenses (id, date, category, amount, description)
			VALUES (?, ?, ?, ?, ?)`,
			row.id, row.date, row.text, row.amount, row.description); err != nil {
			return stats, fmt.Errorf("failed to merge expense %d: %w", row.id, err)
		}
		stats.Expenses++
		_ = bar.Add(1)
	}

	for _, row := range income {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO income (id, date, source, amount, description)
			VALUES (?, ?, ?, ?, ?)`,
			row.id, row.date, row.text, row.amount, row.description); err != nil {
			return stats, fmt.Errorf("failed to merge income %d: %w", row.id, err)
		}
		stats.Income++
		_ = bar.Add(1)
	}

	for _, name := range categories {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO categories (name) VALUES (?)", name); err != nil {
			return stats, fmt.Errorf("failed to merge category %q: %w", name, err)
		}
		stats.Categories++
		_ = bar.Add(1)
	}

	for _, row := range budgets {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO budgets (id, month_year, budget_amount)
			VALUES (?, ?, ?)`,
			row.id, row.text, row.amount); err != nil {
			return stats, fmt.Errorf("failed to merge budget %d: %w", row.id, err)
		}
		stats.Budgets++
		_ = bar.Add(1)
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("failed to commit import: %w", err)
	}

	slog.Info("imported database",
		"src", srcPath,
		"expenses", stats.Expenses,
		"income", stats.Income,
		"categories", stats.Categories,
		"budgets", stats.Budgets)
	return stats, nil
}

func readEntryRows(ctx context.Context, db *sql.DB, query string) ([]importedRow, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read import source: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []importedRow
	for rows.Next() {
		var row importedRow
		var description sql.NullString
		if err := rows.Scan(&row.id, &row.date, &row.text, &row.amount, &description); err != nil {
			return nil, fmt.Errorf("failed to scan import row: %w", err)
		}
		row.description = description.String
		entries = append(entries, row)
	}
	return entries, rows.Err()
}

func readCategoryRows(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM categories")
	if err != nil {
		return nil, fmt.Errorf("failed to read import categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan import category: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func readBudgetRows(ctx context.Context, db *sql.DB) ([]importedRow, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, month_year, budget_amount FROM budgets")
	if err != nil {
		return nil, fmt.Errorf("failed to read import budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []importedRow
	for rows.Next() {
		var row importedRow
		if err := rows.Scan(&row.id, &row.text, &row.amount); err != nil {
			return nil, fmt.Errorf("failed to scan import budget: %w", err)
		}
		budgets = append(budgets, row)
	}
	return budgets, rows.Err()
}
