package storage

import (
	"context"
	"testing"

	"github.com/centsible/centsible/internal/model"
)

func TestStore_ImportEntries(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	expenses := []model.Expense{
		{Date: testDate(t, "2025-01-15"), Category: "Uncategorized", Amount: 25.50, Description: "CORNER GROCERY"},
		{Date: testDate(t, "2025-01-20"), Category: "Uncategorized", Amount: 60.00, Description: "CITY TRANSIT"},
	}
	income := []model.Income{
		{Date: testDate(t, "2025-01-31"), Source: "ACME CORP PAYROLL", Amount: 2500.00, Description: "Salary deposit"},
	}

	if err := store.ImportEntries(ctx, expenses, income); err != nil {
		t.Fatalf("Failed to import entries: %v", err)
	}

	for i, e := range expenses {
		if e.ID == 0 {
			t.Errorf("Expected assigned id for expense %d, got 0", i)
		}
	}
	if income[0].ID == 0 {
		t.Error("Expected assigned id for income entry, got 0")
	}

	fetched, err := store.FetchExpenses(ctx, ExpenseFilter{})
	if err != nil {
		t.Fatalf("Failed to fetch expenses: %v", err)
	}
	if len(fetched) != 2 {
		t.Errorf("Expected 2 expenses, got %d", len(fetched))
	}

	entries, err := store.FetchIncome(ctx, IncomeFilter{})
	if err != nil {
		t.Fatalf("Failed to fetch income: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 income entry, got %d", len(entries))
	}
}

func TestStore_ImportEntries_AtomicOnInvalidRecord(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	expenses := []model.Expense{
		{Date: testDate(t, "2025-01-15"), Category: "Food", Amount: 25.50},
		{Category: "Food", Amount: 10.00}, // missing date
	}

	if err := store.ImportEntries(ctx, expenses, nil); err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	fetched, err := store.FetchExpenses(ctx, ExpenseFilter{})
	if err != nil {
		t.Fatalf("Failed to fetch expenses: %v", err)
	}
	if len(fetched) != 0 {
		t.Errorf("Expected no rows after rejected batch, got %d", len(fetched))
	}
}

func TestStore_ImportEntries_EmptyBatch(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	if err := store.ImportEntries(context.Background(), nil, nil); err != nil {
		t.Errorf("Expected empty batch to be a no-op, got %v", err)
	}
}
