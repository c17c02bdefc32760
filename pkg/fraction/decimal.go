package fraction

import (
	"math"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/shopspring/decimal"
)

// FromDecimal converts x to a simplified fraction over 10^places.
//
// Digits beyond places are truncated toward zero, so the result is an
// approximation whenever x has more decimal digits than places (1/3 becomes
// 333333/1000000 at six places). The digits used are those of the shortest
// decimal representation of x. A places of 0 selects the default of six.
func FromDecimal(x float64, places int) (Fraction, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Fraction{}, calcerr.Invalid("value", "value must be a finite number")
	}
	p, err := decimalPlaces(places)
	if err != nil {
		return Fraction{}, err
	}
	return fromDecimal(decimal.NewFromFloat(x), p)
}

func decimalPlaces(places int) (int32, error) {
	if places == 0 {
		return constants.DefaultFractionDecimalPlaces, nil
	}
	if places < 1 || places > constants.MaxFractionDecimalPlaces {
		return 0, calcerr.Newf(calcerr.InvalidInput, []string{"places"},
			"places must be between 1 and %d", constants.MaxFractionDecimalPlaces)
	}
	return int32(places), nil
}

func fromDecimal(d decimal.Decimal, places int32) (Fraction, error) {
	scaled := d.Truncate(places).Shift(places).BigInt()
	if !scaled.IsInt64() {
		return Fraction{}, calcerr.New(calcerr.InvalidInput, "value is too large to convert at this precision", "value")
	}
	return Simplify(scaled.Int64(), int64(math.Pow10(int(places))))
}

// ToDecimal returns f as a float and as a string with exactly places decimal
// digits, rounded half away from zero. A places of 0 selects the default of six.
func ToDecimal(f Fraction, places int) (float64, string, error) {
	if f.Denominator == 0 {
		return 0, "", calcerr.New(calcerr.DivisionByZero, "denominator is zero", "denominator")
	}
	if places == 0 {
		places = constants.DefaultDecimalPlaces
	}
	if places < 1 || places > constants.MaxDecimalPlaces {
		return 0, "", calcerr.Newf(calcerr.InvalidInput, []string{"places"},
			"places must be between 1 and %d", constants.MaxDecimalPlaces)
	}

	p := int32(places)
	d := decimal.NewFromInt(f.Numerator).DivRound(decimal.NewFromInt(f.Denominator), p)
	return d.InexactFloat64(), d.StringFixed(p), nil
}
