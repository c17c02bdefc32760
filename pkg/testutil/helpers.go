// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/calc-engine/internal/engine"
)

// FindResult finds a calculation result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []engine.Result, name string) *engine.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// SummaryValue returns the summary value with the given label and whether
// it was present.
func SummaryValue(result engine.Result, label string) (string, bool) {
	for _, line := range result.Summary {
		if line.Label == label {
			return line.Value, true
		}
	}
	return "", false
}
