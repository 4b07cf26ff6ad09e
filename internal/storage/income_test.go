package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/model"
)

func seedTestIncome(t *testing.T, store *Store) []model.Income {
	t.Helper()
	ctx := context.Background()

	entries := []model.Income{
		{Date: testDate(t, "2025-01-31"), Source: "Acme Corp", Amount: 5000.00, Description: "January salary"},
		{Date: testDate(t, "2025-02-28"), Source: "Acme Corp", Amount: 5000.00, Description: "February salary"},
		{Date: testDate(t, "2025-02-10"), Source: "Freelance", Amount: 650.00, Description: "Logo design"},
		{Date: testDate(t, "2024-11-15"), Source: "Dividends", Amount: 120.00, Description: ""},
	}
	for i := range entries {
		if err := store.AddIncome(ctx, &entries[i]); err != nil {
			t.Fatalf("Failed to seed income %d: %v", i, err)
		}
	}
	return entries
}

func TestStore_AddIncome(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	in := model.Income{
		Date:        testDate(t, "2025-03-31"),
		Source:      "Acme Corp",
		Amount:      5000.00,
		Description: "March salary",
	}

	if err := store.AddIncome(ctx, &in); err != nil {
		t.Fatalf("Failed to add income: %v", err)
	}
	if in.ID == 0 {
		t.Error("Expected assigned id after insert, got 0")
	}

	fetched, err := store.FetchIncome(ctx, IncomeFilter{})
	if err != nil {
		t.Fatalf("Failed to fetch income: %v", err)
	}
	if len(fetched) != 1 {
		t.Fatalf("Expected 1 income entry, got %d", len(fetched))
	}
	if fetched[0].Source != "Acme Corp" || fetched[0].Amount != 5000.00 {
		t.Errorf("Fetched income does not match inserted one: %+v", fetched[0])
	}
}

func TestStore_AddIncome_Invalid(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	tests := []struct {
		income *model.Income
		name   string
	}{
		{name: "nil income", income: nil},
		{name: "missing date", income: &model.Income{Source: "Acme", Amount: 100}},
		{name: "missing source", income: &model.Income{Date: testDate(t, "2025-01-01"), Amount: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.AddIncome(ctx, tt.income); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestStore_FetchIncome_Filters(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	seedTestIncome(t, store)
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    IncomeFilter
		wantCount int
	}{
		{name: "no filter", filter: IncomeFilter{}, wantCount: 4},
		{name: "source substring", filter: IncomeFilter{Source: "Acme"}, wantCount: 2},
		{name: "source case-insensitive", filter: IncomeFilter{Source: "acme"}, wantCount: 2},
		{name: "year", filter: IncomeFilter{Year: "2025"}, wantCount: 3},
		{name: "month", filter: IncomeFilter{MonthYear: "2025-02"}, wantCount: 2},
		{name: "date range", filter: IncomeFilter{StartDate: "2025-02-01", EndDate: "2025-02-28"}, wantCount: 2},
		{name: "keyword matches description", filter: IncomeFilter{Keyword: "salary"}, wantCount: 2},
		{name: "keyword matches source", filter: IncomeFilter{Keyword: "Dividend"}, wantCount: 1},
		{name: "source and month combined", filter: IncomeFilter{Source: "Acme", MonthYear: "2025-01"}, wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetched, err := store.FetchIncome(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Failed to fetch income: %v", err)
			}
			if len(fetched) != tt.wantCount {
				t.Errorf("Expected %d income entries, got %d", tt.wantCount, len(fetched))
			}
		})
	}
}

func TestStore_FetchIncome_OrderedMostRecentFirst(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	seedTestIncome(t, store)

	fetched, err := store.FetchIncome(context.Background(), IncomeFilter{})
	if err != nil {
		t.Fatalf("Failed to fetch income: %v", err)
	}
	for i := 1; i < len(fetched); i++ {
		if fetched[i].Date.After(fetched[i-1].Date) {
			t.Errorf("Expected descending date order, got %v before %v",
				fetched[i-1].Date, fetched[i].Date)
		}
	}
}

func TestStore_UpdateIncome(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	entries := seedTestIncome(t, store)

	updated := entries[2]
	updated.Amount = 700.00
	updated.Description = "Logo design, revised invoice"

	if err := store.UpdateIncome(ctx, updated); err != nil {
		t.Fatalf("Failed to update income: %v", err)
	}

	fetched, err := store.FetchIncome(ctx, IncomeFilter{Source: "Freelance"})
	if err != nil {
		t.Fatalf("Failed to fetch updated income: %v", err)
	}
	if len(fetched) != 1 {
		t.Fatalf("Expected 1 income entry, got %d", len(fetched))
	}
	if fetched[0].Amount != 700.00 {
		t.Errorf("Expected updated amount 700.00, got %.2f", fetched[0].Amount)
	}
}

func TestStore_UpdateIncome_NotFound(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	err := store.UpdateIncome(context.Background(), model.Income{
		ID:     9999,
		Date:   testDate(t, "2025-01-01"),
		Source: "Acme Corp",
		Amount: 100,
	})
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing id, got %v", err)
	}
}

func TestStore_DeleteIncome(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	entries := seedTestIncome(t, store)

	if err := store.DeleteIncome(ctx, entries[0].ID); err != nil {
		t.Fatalf("Failed to delete income: %v", err)
	}
	if err := store.DeleteIncome(ctx, entries[0].ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	fetched, err := store.FetchIncome(ctx, IncomeFilter{})
	if err != nil {
		t.Fatalf("Failed to fetch income: %v", err)
	}
	if len(fetched) != len(entries)-1 {
		t.Errorf("Expected %d income entries after delete, got %d", len(entries)-1, len(fetched))
	}
}

func TestStore_IncomeYears(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	seedTestIncome(t, store)

	years, err := store.IncomeYears(context.Background())
	if err != nil {
		t.Fatalf("Failed to list income years: %v", err)
	}
	want := []string{"2025", "2024"}
	if len(years) != len(want) {
		t.Fatalf("Expected years %v, got %v", want, years)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Errorf("Expected year %q at position %d, got %q", want[i], i, years[i])
		}
	}
}
