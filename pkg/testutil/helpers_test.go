package testutil

import (
	"testing"

	"github.com/iwvelando/calc-engine/internal/engine"
)

func TestFindResult(t *testing.T) {
	results := []engine.Result{
		{Name: "Result A", Type: engine.TypeBMI},
		{Name: "Result B", Type: engine.TypeLoan},
		{Name: "Another Result", Type: engine.TypeROI},
	}

	tests := []struct {
		name         string
		searchName   string
		expectFound  bool
		expectedType string
	}{
		{"Find existing result A", "Result A", true, engine.TypeBMI},
		{"Find existing result B", "Result B", true, engine.TypeLoan},
		{"Find another result", "Another Result", true, engine.TypeROI},
		{"Non-existent result", "Missing", false, ""},
		{"Empty name", "", false, ""},
		{"Case sensitive", "result a", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindResult(results, tt.searchName)
			if !tt.expectFound {
				if found != nil {
					t.Errorf("FindResult(%q) = %v, expected nil", tt.searchName, found.Name)
				}
				return
			}
			if found == nil {
				t.Fatalf("FindResult(%q) returned nil", tt.searchName)
			}
			if found.Type != tt.expectedType {
				t.Errorf("FindResult(%q).Type = %s, expected %s", tt.searchName, found.Type, tt.expectedType)
			}
		})
	}
}

func TestFindResultReturnsSliceElement(t *testing.T) {
	results := []engine.Result{{Name: "only"}}
	found := FindResult(results, "only")
	found.Type = engine.TypeFraction
	if results[0].Type != engine.TypeFraction {
		t.Error("FindResult should return a pointer into the slice")
	}
}

func TestFindResultEmpty(t *testing.T) {
	if FindResult(nil, "anything") != nil {
		t.Error("expected nil for empty results")
	}
}

func TestSummaryValue(t *testing.T) {
	result := engine.Result{Summary: []engine.Line{
		{Label: "BMI", Value: "24.22"},
		{Label: "Category", Value: "normal"},
	}}

	if v, ok := SummaryValue(result, "Category"); !ok || v != "normal" {
		t.Errorf("SummaryValue(Category) = %q, %v", v, ok)
	}
	if _, ok := SummaryValue(result, "Missing"); ok {
		t.Error("expected missing label to report false")
	}
}
