// Package units converts body measurements and food portions between the
// metric and imperial systems accepted by the health calculators.
package units

import (
	"fmt"
	"strings"
)

// System is a measurement system.
type System string

const (
	// Metric measures weight in kilograms, height in centimetres and food in grams.
	Metric System = "metric"
	// Imperial measures weight in pounds, height in inches and food in ounces.
	Imperial System = "imperial"
)

// Conversion factors (exact by definition).
const (
	KilogramsPerPound   = 0.45359237
	CentimetersPerInch  = 2.54
	GramsPerOunce       = 28.349523125
	CentimetersPerMeter = 100.0
)

// ParseSystem resolves a unit name. An empty name is Metric.
func ParseSystem(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "metric", "si":
		return Metric, nil
	case "imperial", "us":
		return Imperial, nil
	default:
		return "", fmt.Errorf("unsupported unit %q, expected %s or %s", name, Metric, Imperial)
	}
}

// WeightUnit returns the weight unit label for the system.
func (s System) WeightUnit() string {
	if s == Imperial {
		return "lb"
	}
	return "kg"
}

// HeightUnit returns the height unit label for the system.
func (s System) HeightUnit() string {
	if s == Imperial {
		return "in"
	}
	return "cm"
}

// PortionUnit returns the food portion unit label for the system.
func (s System) PortionUnit() string {
	if s == Imperial {
		return "oz"
	}
	return "g"
}

// WeightToKilograms converts a weight in the system's unit to kilograms.
func (s System) WeightToKilograms(weight float64) float64 {
	if s == Imperial {
		return weight * KilogramsPerPound
	}
	return weight
}

// WeightFromKilograms converts kilograms to the system's weight unit.
func (s System) WeightFromKilograms(kg float64) float64 {
	if s == Imperial {
		return kg / KilogramsPerPound
	}
	return kg
}

// HeightToCentimeters converts a height in the system's unit to centimetres.
func (s System) HeightToCentimeters(height float64) float64 {
	if s == Imperial {
		return height * CentimetersPerInch
	}
	return height
}

// HeightToMeters converts a height in the system's unit to metres.
func (s System) HeightToMeters(height float64) float64 {
	return s.HeightToCentimeters(height) / CentimetersPerMeter
}

// PortionFromGrams converts grams to the system's portion unit.
func (s System) PortionFromGrams(grams float64) float64 {
	if s == Imperial {
		return grams / GramsPerOunce
	}
	return grams
}
