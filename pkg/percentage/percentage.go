// Package percentage solves the three-way percentage relation between a
// part, a rate and a whole, plus percentage change.
package percentage

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/iwvelando/calc-engine/pkg/format"
	"github.com/iwvelando/calc-engine/pkg/mathutil"
	"github.com/iwvelando/calc-engine/pkg/validation"
)

// CalculationType selects which quantity is solved for.
type CalculationType string

const (
	// Percentage finds what percent value1 is of value2.
	Percentage CalculationType = "percentage"
	// Value finds value1 percent of value2.
	Value CalculationType = "value"
	// Total finds the whole of which value1 is value2 percent.
	Total CalculationType = "total"
	// Change finds the percentage change from value1 to value2.
	Change CalculationType = "change"
)

// Inputs holds the operands. Their meaning depends on CalculationType.
type Inputs struct {
	CalculationType CalculationType `json:"calculationType" yaml:"calculationType" mapstructure:"calculationType" validate:"oneof=percentage value total change"`
	Value1          float64         `json:"value1" yaml:"value1" mapstructure:"value1" validate:"finite"`
	Value2          float64         `json:"value2" yaml:"value2" mapstructure:"value2" validate:"finite"`
}

// Results holds the answer rounded to two decimals with a readable formula
// and explanation.
type Results struct {
	Result      float64 `json:"result"`
	Explanation string  `json:"explanation"`
	Formula     string  `json:"formula"`
}

// Calculate solves the relation selected by CalculationType.
func Calculate(in Inputs) (Results, error) {
	in.CalculationType = CalculationType(strings.ToLower(strings.TrimSpace(string(in.CalculationType))))
	if err := validation.Struct(in); err != nil {
		return Results{}, err
	}

	v1, v2 := in.Value1, in.Value2
	var result float64

	switch in.CalculationType {
	case Percentage:
		if v2 == 0 {
			return Results{}, calcerr.New(calcerr.DivisionByZero, "cannot take a percentage of zero", "value2")
		}
		result = mathutil.Round(mathutil.CalculatePercentage(v1, v2))
		if !mathutil.IsFinite(result) {
			return Results{}, overflow()
		}
		return Results{
			Result:      result,
			Formula:     "(value1 / value2) × 100",
			Explanation: fmt.Sprintf("%s is %s of %s", num(v1), format.Percent(result), num(v2)),
		}, nil

	case Value:
		result = mathutil.Round(mathutil.ApplyPercentage(v2, v1))
		if !mathutil.IsFinite(result) {
			return Results{}, overflow()
		}
		return Results{
			Result:      result,
			Formula:     "(value1 × value2) / 100",
			Explanation: fmt.Sprintf("%s of %s is %s", format.Percent(v1), num(v2), num(result)),
		}, nil

	case Total:
		if v2 == 0 {
			return Results{}, calcerr.New(calcerr.DivisionByZero, "a zero percentage has no total", "value2")
		}
		result = mathutil.Round(v1 / (v2 / constants.PercentageMultiplier))
		if !mathutil.IsFinite(result) {
			return Results{}, overflow()
		}
		return Results{
			Result:      result,
			Formula:     "value1 / (value2 / 100)",
			Explanation: fmt.Sprintf("%s is %s of %s", num(v1), format.Percent(v2), num(result)),
		}, nil

	default: // Change
		if v1 == 0 {
			return Results{}, calcerr.New(calcerr.DivisionByZero, "percentage change from zero is undefined", "value1")
		}
		result = mathutil.Round((v2 - v1) / math.Abs(v1) * constants.PercentageMultiplier)
		if !mathutil.IsFinite(result) {
			return Results{}, overflow()
		}
		direction := "increase"
		if result < 0 {
			direction = "decrease"
		}
		return Results{
			Result:  result,
			Formula: "((value2 - value1) / |value1|) × 100",
			Explanation: fmt.Sprintf("from %s to %s is a %s %s",
				num(v1), num(v2), format.Percent(math.Abs(result)), direction),
		}, nil
	}
}

func overflow() error {
	return calcerr.New(calcerr.UndefinedResult, "result is too large to represent", "value1", "value2")
}

func num(v float64) string {
	return format.Number(v, constants.CurrencyPlaces)
}
