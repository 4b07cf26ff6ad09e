package model

import (
	"errors"
	"testing"

	"github.com/centsible/centsible/internal/common"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "integer", input: "42", want: 42},
		{name: "decimal", input: "12.34", want: 12.34},
		{name: "surrounding spaces", input: "  9.99 ", want: 9.99},
		{name: "zero rejected", input: "0", wantErr: true},
		{name: "negative rejected", input: "-5", wantErr: true},
		{name: "not a number", input: "twelve", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, common.ErrInvalidAmount) {
					t.Errorf("Expected ErrInvalidAmount for %q, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Failed to parse %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseBudgetAmount(t *testing.T) {
	// Zero is a valid budget, unlike a zero expense.
	got, err := ParseBudgetAmount("0")
	if err != nil {
		t.Fatalf("Expected zero budget to parse, got %v", err)
	}
	if got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}

	if _, err := ParseBudgetAmount("-100"); !errors.Is(err, common.ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount for negative budget, got %v", err)
	}
	if _, err := ParseBudgetAmount("lots"); !errors.Is(err, common.ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount for non-number, got %v", err)
	}
}

func TestRequireField(t *testing.T) {
	if err := RequireField("Food", "category"); err != nil {
		t.Errorf("Expected no error for present field, got %v", err)
	}
	if err := RequireField("", "category"); !errors.Is(err, common.ErrMissingField) {
		t.Errorf("Expected ErrMissingField, got %v", err)
	}
	if err := RequireField("   ", "category"); !errors.Is(err, common.ErrMissingField) {
		t.Errorf("Expected ErrMissingField for whitespace, got %v", err)
	}
}
