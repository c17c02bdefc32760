package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number away from zero", -1.235, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"Large negative", -12345.678, -12345.68},
		{"Binary midpoint", 1.005, 1.01},
		{"Negative binary midpoint", -1.005, -1.01},
		{"Repeating third", 10.0 / 3.0, 3.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if result != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		places   int32
		expected float64
	}{
		{"Whole number up", 2.5, 0, 3},
		{"Whole number negative", -2.5, 0, -3},
		{"One place", 24.2214, 1, 24.2},
		{"Four places", 0.333333, 4, 0.3333},
		{"Six places midpoint", 0.1234565, 6, 0.123457},
		{"Negative places", 1550, -2, 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundTo(tt.input, tt.places)
			if result != tt.expected {
				t.Errorf("RoundTo(%v, %d) = %v, expected %v", tt.input, tt.places, result, tt.expected)
			}
		})
	}
}

func TestRoundTo_NonFinite(t *testing.T) {
	if !math.IsNaN(RoundTo(math.NaN(), 2)) {
		t.Errorf("RoundTo(NaN) should stay NaN")
	}
	if !math.IsInf(RoundTo(math.Inf(1), 2), 1) {
		t.Errorf("RoundTo(+Inf) should stay +Inf")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Errorf("IsFinite(1.5) should be true")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) {
		t.Errorf("IsFinite should reject NaN and infinities")
	}
}

func TestAllFinite(t *testing.T) {
	tests := []struct {
		name     string
		vals     []float64
		expected bool
	}{
		{"no values", nil, true},
		{"all finite", []float64{0, -1.5, 1e308}, true},
		{"positive infinity", []float64{1, math.Inf(1)}, false},
		{"NaN", []float64{math.NaN(), 2}, false},
		{"negative infinity", []float64{3, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := AllFinite(tt.vals...); result != tt.expected {
				t.Errorf("AllFinite(%v) = %v, expected %v", tt.vals, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"50% of 100", 50.0, 100.0, 50.0},
		{"25% of 200", 50.0, 200.0, 25.0},
		{"More than 100%", 150.0, 100.0, 150.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Negative total", 50.0, -100.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"50% of 100", 100.0, 50.0, 50.0},
		{"150% of value", 100.0, 150.0, 150.0},
		{"0% of value", 100.0, 0.0, 0.0},
		{"Negative percentage", 100.0, -50.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v",
					tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestRoundingEdgeCases(t *testing.T) {
	result := Round(999999999.999)
	if result != 1000000000.00 {
		t.Errorf("Round of large number failed: got %v", result)
	}

	result = Round(0.0001)
	if result != 0 {
		t.Errorf("Round of small number failed: got %v", result)
	}
}
