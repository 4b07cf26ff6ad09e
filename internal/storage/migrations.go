package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/centsible/centsible/internal/model"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, opening the
// store is a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS expenses (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					date TEXT NOT NULL,
					category TEXT NOT NULL,
					amount REAL NOT NULL,
					description TEXT
				)`,

				`CREATE TABLE IF NOT EXISTS budgets (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					month_year TEXT UNIQUE NOT NULL,
					budget_amount REAL NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS income (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					date TEXT NOT NULL,
					source TEXT NOT NULL,
					amount REAL NOT NULL,
					description TEXT
				)`,

				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add date and category indexes",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
				`CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category)`,
				`CREATE INDEX IF NOT EXISTS idx_income_date ON income(date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the schema to the expected version and seeds default data
// into empty tables. It is safe to call on every startup.
func (s *Store) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return s.seedDefaults(ctx)
}

// seedDefaults installs the default category set and a zero budget for the
// current month, but only into tables that are still empty.
func (s *Store) seedDefaults(ctx context.Context) error {
	var categoryCount int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&categoryCount); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}

	if categoryCount == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, "INSERT INTO categories (name) VALUES (?)")
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, name := range model.DefaultCategories {
			if _, err := stmt.ExecContext(ctx, name); err != nil {
				return fmt.Errorf("failed to seed category %q: %w", name, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit category seed: %w", err)
		}
		slog.Info("seeded default categories", "count", len(model.DefaultCategories))
	}

	var budgetCount int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM budgets").Scan(&budgetCount); err != nil {
		return fmt.Errorf("failed to count budgets: %w", err)
	}

	if budgetCount == 0 {
		monthYear := model.CurrentMonthKey()
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO budgets (month_year, budget_amount) VALUES (?, ?)",
			monthYear, 0.0)
		if err != nil {
			return fmt.Errorf("failed to seed default budget: %w", err)
		}
		slog.Info("seeded default budget", "month_year", monthYear, "amount", 0.0)
	}

	return nil
}
