package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/centsible/centsible/internal/config"
	"github.com/centsible/centsible/internal/model"
	"github.com/centsible/centsible/internal/storage"
)

// initStorage opens the configured database and brings its schema up to
// date. Failure here aborts the command; it is the only fatal store error.
func initStorage(ctx context.Context) (*storage.Store, error) {
	dbPath := config.DatabasePath(viper.GetString("database.path"))

	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseID parses a positive numeric row id from a command argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// parseDateFlag parses a --date value, defaulting to today when empty.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return model.ParseDate(value)
}

// monthFlagOrCurrent returns a validated "YYYY-MM" month key, defaulting to
// the current month when empty.
func monthFlagOrCurrent(value string) (string, error) {
	if value == "" {
		return model.CurrentMonthKey(), nil
	}
	if _, err := model.ParseMonthKey(value); err != nil {
		return "", err
	}
	return value, nil
}
