// Package bmi calculates body-mass index, its weight category and the
// healthy weight range for a height.
package bmi

import (
	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/mathutil"
	"github.com/iwvelando/calc-engine/pkg/units"
	"github.com/iwvelando/calc-engine/pkg/validation"
)

// Category is a BMI weight category.
type Category string

const (
	Underweight Category = "underweight"
	Normal      Category = "normal"
	Overweight  Category = "overweight"
	Obese       Category = "obese"
)

// Category lower bounds. Each bound is inclusive for the category above it.
const (
	NormalThreshold     = 18.5
	OverweightThreshold = 25.0
	ObeseThreshold      = 30.0

	// HealthyMax is the upper BMI used for the healthy weight range.
	HealthyMax = 24.9

	// PrimeReference is the BMI that BMI Prime is expressed against.
	PrimeReference = 25.0
)

// Inputs holds a body measurement. Metric is kilograms and centimetres,
// imperial is pounds and inches.
type Inputs struct {
	Weight float64 `json:"weight" yaml:"weight" mapstructure:"weight" validate:"finite,gt=0"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height" validate:"finite,gt=0"`
	Unit   string  `json:"unit,omitempty" yaml:"unit,omitempty" mapstructure:"unit"`
}

// WeightRange is a weight interval in the input weight unit.
type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Results holds the BMI and derived values.
type Results struct {
	BMI                float64      `json:"bmi"`
	Category           Category     `json:"category"`
	HealthyWeightRange WeightRange  `json:"healthyWeightRange"`
	BMIPrime           float64      `json:"bmiPrime"`
	Unit               units.System `json:"unit"`
}

// Classify maps a BMI value to its category.
func Classify(bmi float64) Category {
	switch {
	case bmi < NormalThreshold:
		return Underweight
	case bmi < OverweightThreshold:
		return Normal
	case bmi < ObeseThreshold:
		return Overweight
	default:
		return Obese
	}
}

// Calculate computes the BMI for the measurement.
func Calculate(in Inputs) (Results, error) {
	system, err := units.ParseSystem(in.Unit)
	if err != nil {
		return Results{}, calcerr.Invalid("unit", err.Error())
	}
	if err := validation.Struct(in); err != nil {
		return Results{}, err
	}

	kg := system.WeightToKilograms(in.Weight)
	meters := system.HeightToMeters(in.Height)
	bmi := mathutil.Round(kg / (meters * meters))
	healthy := WeightRange{
		Min: mathutil.Round(system.WeightFromKilograms(NormalThreshold * meters * meters)),
		Max: mathutil.Round(system.WeightFromKilograms(HealthyMax * meters * meters)),
	}
	if !mathutil.AllFinite(bmi, healthy.Min, healthy.Max) {
		return Results{}, calcerr.New(calcerr.UndefinedResult,
			"measurements are outside the representable range", "weight", "height")
	}

	return Results{
		BMI:                bmi,
		Category:           Classify(bmi),
		HealthyWeightRange: healthy,
		BMIPrime:           mathutil.Round(bmi / PrimeReference),
		Unit:               system,
	}, nil
}
