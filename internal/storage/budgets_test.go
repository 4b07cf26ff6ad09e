package storage

import (
	"context"
	"testing"

	"github.com/centsible/centsible/internal/model"
)

func TestStore_SetMonthlyBudget_RoundTrip(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.SetMonthlyBudget(ctx, "2030-01", 1500.00); err != nil {
		t.Fatalf("Failed to set budget: %v", err)
	}

	amount, err := store.GetMonthlyBudget(ctx, "2030-01")
	if err != nil {
		t.Fatalf("Failed to get budget: %v", err)
	}
	if amount != 1500.00 {
		t.Errorf("Expected budget 1500.00, got %.2f", amount)
	}
}

func TestStore_SetMonthlyBudget_Upsert(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.SetMonthlyBudget(ctx, "2030-01", 1000.00); err != nil {
		t.Fatalf("Failed to set budget: %v", err)
	}
	if err := store.SetMonthlyBudget(ctx, "2030-01", 2000.00); err != nil {
		t.Fatalf("Failed to overwrite budget: %v", err)
	}

	amount, err := store.GetMonthlyBudget(ctx, "2030-01")
	if err != nil {
		t.Fatalf("Failed to get budget: %v", err)
	}
	if amount != 2000.00 {
		t.Errorf("Expected overwritten budget 2000.00, got %.2f", amount)
	}

	// Upsert must not leave a second row behind for the month.
	months, err := store.BudgetMonths(ctx)
	if err != nil {
		t.Fatalf("Failed to list budget months: %v", err)
	}
	count := 0
	for _, m := range months {
		if m == "2030-01" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one row for 2030-01, got %d", count)
	}
}

func TestStore_SetMonthlyBudget_Invalid(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	tests := []struct {
		name      string
		monthYear string
		amount    float64
	}{
		{name: "negative amount", monthYear: "2030-01", amount: -1},
		{name: "bad month key", monthYear: "January 2030", amount: 100},
		{name: "month out of range", monthYear: "2030-13", amount: 100},
		{name: "empty month key", monthYear: "", amount: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SetMonthlyBudget(ctx, tt.monthYear, tt.amount); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestStore_GetMonthlyBudget_MissingMonthIsZero(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	amount, err := store.GetMonthlyBudget(context.Background(), "2030-06")
	if err != nil {
		t.Fatalf("Expected no error for missing month, got %v", err)
	}
	if amount != 0 {
		t.Errorf("Expected 0 for month without a budget, got %.2f", amount)
	}
}

func TestStore_SetMonthlyBudget_ZeroAllowed(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.SetMonthlyBudget(ctx, "2030-02", 500.00); err != nil {
		t.Fatalf("Failed to set budget: %v", err)
	}
	if err := store.SetMonthlyBudget(ctx, "2030-02", 0); err != nil {
		t.Fatalf("Expected zero budget to be accepted, got %v", err)
	}

	amount, err := store.GetMonthlyBudget(ctx, "2030-02")
	if err != nil {
		t.Fatalf("Failed to get budget: %v", err)
	}
	if amount != 0 {
		t.Errorf("Expected budget reset to 0, got %.2f", amount)
	}
}

func TestStore_BudgetMonths_Ordering(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	for _, m := range []string{"2030-01", "2030-03", "2030-02"} {
		if err := store.SetMonthlyBudget(ctx, m, 100); err != nil {
			t.Fatalf("Failed to set budget for %s: %v", m, err)
		}
	}

	months, err := store.BudgetMonths(ctx)
	if err != nil {
		t.Fatalf("Failed to list budget months: %v", err)
	}

	// Seeded current-month budget plus the three above, newest first.
	want := []string{"2030-03", "2030-02", "2030-01", model.CurrentMonthKey()}
	if len(months) != len(want) {
		t.Fatalf("Expected months %v, got %v", want, months)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("Expected month %q at position %d, got %q", want[i], i, months[i])
		}
	}
}
