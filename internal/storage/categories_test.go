package storage

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/model"
)

func TestStore_Categories_SortedByName(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	categories, err := store.Categories(context.Background())
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if !sort.StringsAreSorted(categories) {
		t.Errorf("Expected categories sorted by name, got %v", categories)
	}
}

func TestStore_AddCategory(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.AddCategory(ctx, "Hobbies"); err != nil {
		t.Fatalf("Failed to add category: %v", err)
	}

	categories, err := store.Categories(ctx)
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	found := false
	for _, name := range categories {
		if name == "Hobbies" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected %q in category list %v", "Hobbies", categories)
	}
}

func TestStore_AddCategory_Duplicate(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.AddCategory(ctx, "Hobbies"); err != nil {
		t.Fatalf("Failed to add category: %v", err)
	}

	err := store.AddCategory(ctx, "Hobbies")
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry, got %v", err)
	}

	// Seeded names collide too.
	err = store.AddCategory(ctx, "Food")
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry for seeded name, got %v", err)
	}
}

func TestStore_RenameCategory_CascadesToExpenses(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	e := model.Expense{Date: testDate(t, "2025-01-10"), Category: "Food", Amount: 25.00, Description: "Takeout"}
	if err := store.AddExpense(ctx, &e); err != nil {
		t.Fatalf("Failed to add expense: %v", err)
	}

	if err := store.RenameCategory(ctx, "Food", "Groceries"); err != nil {
		t.Fatalf("Failed to rename category: %v", err)
	}

	categories, err := store.Categories(ctx)
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	for _, name := range categories {
		if name == "Food" {
			t.Error("Expected old name to be gone after rename")
		}
	}

	fetched, err := store.FetchExpenses(ctx, ExpenseFilter{Category: "Groceries"})
	if err != nil {
		t.Fatalf("Failed to fetch expenses: %v", err)
	}
	if len(fetched) != 1 {
		t.Fatalf("Expected 1 expense under new name, got %d", len(fetched))
	}
	if fetched[0].ID != e.ID {
		t.Errorf("Expected expense %d to carry the new name, got %d", e.ID, fetched[0].ID)
	}

	leftover, err := store.FetchExpenses(ctx, ExpenseFilter{Category: "Food"})
	if err != nil {
		t.Fatalf("Failed to fetch expenses: %v", err)
	}
	if len(leftover) != 0 {
		t.Errorf("Expected no expenses under old name, got %d", len(leftover))
	}
}

func TestStore_RenameCategory_Errors(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.RenameCategory(ctx, "Nonexistent", "Whatever"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing category, got %v", err)
	}

	if err := store.RenameCategory(ctx, "Food", "Transport"); !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry when target exists, got %v", err)
	}

	// Failed rename must not touch the category list.
	categories, err := store.Categories(ctx)
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if len(categories) != len(model.DefaultCategories) {
		t.Errorf("Expected %d categories after failed renames, got %d", len(model.DefaultCategories), len(categories))
	}
}

func TestStore_DeleteCategory_ReassignsExpenses(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	e := model.Expense{Date: testDate(t, "2025-01-10"), Category: "Gym", Amount: 40.00, Description: "Membership"}
	if err := store.AddExpense(ctx, &e); err != nil {
		t.Fatalf("Failed to add expense: %v", err)
	}

	if err := store.DeleteCategory(ctx, "Gym"); err != nil {
		t.Fatalf("Failed to delete category: %v", err)
	}

	fetched, err := store.FetchExpenses(ctx, ExpenseFilter{Category: model.Uncategorized})
	if err != nil {
		t.Fatalf("Failed to fetch expenses: %v", err)
	}
	if len(fetched) != 1 {
		t.Fatalf("Expected 1 reassigned expense, got %d", len(fetched))
	}
	if fetched[0].ID != e.ID {
		t.Errorf("Expected expense %d reassigned to %q", e.ID, model.Uncategorized)
	}

	categories, err := store.Categories(ctx)
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	for _, name := range categories {
		if name == "Gym" {
			t.Error("Expected deleted category to be gone")
		}
	}
}

func TestStore_DeleteCategory_NotFound(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	err := store.DeleteCategory(context.Background(), "Nonexistent")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
