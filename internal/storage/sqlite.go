package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Store owns the single long-lived connection to the database file. It is
// opened at startup and held until Close, except around file-replace
// operations (restore, erase) which close and reopen it explicitly.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens (creating if necessary) the database file at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the path of the live database file.
func (s *Store) Path() string {
	return s.dbPath
}

// reopen re-establishes the connection after the underlying file has been
// replaced. The old handle must already be closed.
func (s *Store) reopen(ctx context.Context) error {
	db, err := openDB(s.dbPath)
	if err != nil {
		return err
	}
	s.db = db
	return s.Migrate(ctx)
}
