package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/centsible/centsible/internal/common"
)

// Backup-related errors.
var (
	ErrBackupNotFound = errors.New("backup file not found")
)

// Backup writes a consistent copy of the live database to destPath. The
// live connection stays open; sqlite's VACUUM INTO produces the snapshot,
// with a plain file copy as fallback for older sqlite builds.
func (s *Store) Backup(ctx context.Context, destPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(destPath, "destPath"); err != nil {
		return err
	}

	destPath, err := filepath.Abs(destPath)
	if err != nil {
		return fmt.Errorf("failed to resolve backup path: %w", err)
	}

	// Flush the WAL so the main file holds every committed write.
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	// VACUUM INTO takes a literal path, so keep quoting-hostile paths out.
	if strings.ContainsAny(destPath, `'";`) || strings.Contains(destPath, "..") {
		return fmt.Errorf("invalid backup destination path")
	}

	query := fmt.Sprintf("VACUUM INTO '%s'", destPath)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		slog.Debug("VACUUM INTO unavailable, falling back to file copy", "error", err)
		return copyFile(s.dbPath, destPath)
	}

	slog.Info("backed up database", "dest", destPath)
	return nil
}

// Restore overwrites the live database file with a backup. The source file
// is integrity-checked first; the live connection is closed around the copy
// and reopened (and re-migrated) afterwards. A safety copy of the current
// file is kept until the copy succeeds.
func (s *Store) Restore(ctx context.Context, srcPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(srcPath, "srcPath"); err != nil {
		return err
	}

	if _, err := os.Stat(srcPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBackupNotFound, srcPath)
		}
		return fmt.Errorf("failed to access backup: %w", err)
	}

	if err := verifyIntegrity(srcPath); err != nil {
		return fmt.Errorf("%w: %v", common.ErrDatabaseCorrupted, err)
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	safetyPath := s.dbPath + ".restore-backup"
	if err := copyFile(s.dbPath, safetyPath); err != nil {
		return fmt.Errorf("failed to back up current database: %w", err)
	}

	if err := copyFile(srcPath, s.dbPath); err != nil {
		if undoErr := copyFile(safetyPath, s.dbPath); undoErr != nil {
			slog.Error("failed to undo partial restore", "error", undoErr)
		}
		return fmt.Errorf("failed to restore database: %w", err)
	}

	if err := os.Remove(safetyPath); err != nil {
		slog.Error("failed to remove safety copy", "error", err)
	}

	if err := s.reopen(ctx); err != nil {
		return fmt.Errorf("failed to reopen restored database: %w", err)
	}

	slog.Info("restored database", "src", srcPath)
	return nil
}

// Erase closes the connection, deletes the database file outright, and
// reinitializes a fresh empty store with default seed data.
func (s *Store) Erase(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	for _, path := range []string{s.dbPath, s.dbPath + "-wal", s.dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	if err := s.reopen(ctx); err != nil {
		return fmt.Errorf("failed to reinitialize database: %w", err)
	}

	slog.Info("erased database", "path", s.dbPath)
	return nil
}

// verifyIntegrity opens a database file independently and runs sqlite's
// integrity check against it.
func verifyIntegrity(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}

	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}

	return nil
}

// copyFile copies src over dst through a temporary file and an atomic
// rename, so a failed copy never leaves a truncated destination.
func copyFile(src, dst string) error {
	if strings.Contains(src, "..") || strings.Contains(dst, "..") {
		return fmt.Errorf("invalid file paths")
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := source.Close(); closeErr != nil {
			slog.Error("failed to close source file", "error", closeErr)
		}
	}()

	tmpDst := dst + ".tmp"
	destination, err := os.Create(tmpDst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		_ = destination.Close()
		_ = os.Remove(tmpDst)
		return err
	}

	if err := destination.Close(); err != nil {
		_ = os.Remove(tmpDst)
		return err
	}

	return os.Rename(tmpDst, dst)
}
