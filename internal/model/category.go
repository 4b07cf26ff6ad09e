package model

// Category represents a valid expense category. Names are unique and
// case-preserving; expenses reference categories by name, not by id.
type Category struct {
	Name string
	ID   int64
}

// Reserved names with special meaning at the filtering and data-access
// boundaries. Neither is a real category.
const (
	// AllCategories means "no category filter" when passed as a filter value.
	AllCategories = "All Categories"
	// AllYears means "no year filter" when passed as a filter value.
	AllYears = "All Years"
	// Uncategorized is assigned to expenses whose category was deleted.
	Uncategorized = "Uncategorized"
)

// DefaultCategories is the seed set installed into an empty store.
var DefaultCategories = []string{
	"Food", "Transport", "Utilities", "Rent",
	"Entertainment", "Shopping", "Healthcare",
	"Education", "Salary", "Freelance", "Investments",
	"Travel", "Fuel", "Books", "Gym", "Gifts",
}
