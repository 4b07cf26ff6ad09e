package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/model"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// isUniqueViolation reports whether err is a sqlite unique-constraint
// failure, so duplicate category names can be surfaced distinctly from
// generic store errors.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// Categories returns all category names, alphabetically ascending.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(names))
	return names, nil
}

// AddCategory creates a new category. A name collision returns
// common.ErrDuplicateEntry rather than a generic store error.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, name)
	}
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}

	slog.Info("added category", "name", name)
	return nil
}

// RenameCategory renames a category and cascades the new name onto every
// expense tagged with the old one, atomically. A collision with an existing
// name rejects the whole operation with common.ErrDuplicateEntry; no partial
// rename is ever visible.
func (s *Store) RenameCategory(ctx context.Context, oldName, newName string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(oldName, "oldName"); err != nil {
		return err
	}
	if err := validateString(newName, "newName"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		"UPDATE categories SET name = ? WHERE name = ?", newName, oldName)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, newName)
	}
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check renamed rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %q", common.ErrNotFound, oldName)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE expenses SET category = ? WHERE category = ?", newName, oldName); err != nil {
		return fmt.Errorf("failed to cascade category rename: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category rename: %w", err)
	}

	slog.Info("renamed category", "old", oldName, "new", newName)
	return nil
}

// DeleteCategory removes a category, reassigning every expense tagged with
// it to the Uncategorized sentinel first. Both steps happen atomically; no
// expense row is ever deleted.
func (s *Store) DeleteCategory(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE expenses SET category = ? WHERE category = ?",
		model.Uncategorized, name); err != nil {
		return fmt.Errorf("failed to reassign expenses: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %q", common.ErrNotFound, name)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category delete: %w", err)
	}

	slog.Info("deleted category", "name", name)
	return nil
}
