package fraction

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
)

// MixedNumber is Whole plus Numerator/Denominator.
//
// The sign of the value is carried by Whole, or by Numerator when Whole is
// zero, so -2 3/4 is {-2, 3, 4} and -3/4 is {0, -3, 4}. Normalized mixed
// numbers have a proper fractional part in lowest terms with a positive
// denominator; a whole value has Numerator 0 and Denominator 1.
type MixedNumber struct {
	Whole       int64 `json:"whole" yaml:"whole" mapstructure:"whole"`
	Numerator   int64 `json:"numerator" yaml:"numerator" mapstructure:"numerator"`
	Denominator int64 `json:"denominator" yaml:"denominator" mapstructure:"denominator"`
}

// ToImproper converts m to a simplified improper fraction. Any sign on the
// fractional part is ignored when Whole is non-zero; its magnitude is added
// away from zero.
func ToImproper(m MixedNumber) (Fraction, error) {
	if m.Denominator == 0 {
		return Fraction{}, calcerr.New(calcerr.DivisionByZero, "denominator is zero", "denominator")
	}

	s := sign(m.Whole)
	if s == 0 {
		s = sign(m.Numerator) * sign(m.Denominator)
	}

	d := new(big.Int).Abs(big.NewInt(m.Denominator))
	mag := new(big.Int).Abs(big.NewInt(m.Whole))
	mag.Mul(mag, d)
	mag.Add(mag, new(big.Int).Abs(big.NewInt(m.Numerator)))
	if s < 0 {
		mag.Neg(mag)
	}

	return fromRat(new(big.Rat).SetFrac(mag, d), "whole", "numerator", "denominator")
}

// ToMixed converts f to a normalized mixed number, truncating toward zero.
func ToMixed(f Fraction) (MixedNumber, error) {
	s, err := f.Simplify()
	if err != nil {
		return MixedNumber{}, err
	}

	whole := s.Numerator / s.Denominator
	rem := s.Numerator % s.Denominator
	if whole != 0 {
		rem = abs(rem)
	}
	if rem == 0 {
		return MixedNumber{Whole: whole, Numerator: 0, Denominator: 1}, nil
	}
	return MixedNumber{Whole: whole, Numerator: rem, Denominator: s.Denominator}, nil
}

// Normalize rewrites m with a proper fractional part in lowest terms,
// carrying any excess into the whole part.
func Normalize(m MixedNumber) (MixedNumber, error) {
	f, err := ToImproper(m)
	if err != nil {
		return MixedNumber{}, err
	}
	return ToMixed(f)
}

// CombineMixed applies op to two mixed numbers and returns the normalized result.
func CombineMixed(a, b MixedNumber, op Op) (MixedNumber, error) {
	fa, err := ToImproper(a)
	if err != nil {
		return MixedNumber{}, relabel(err, "a")
	}
	fb, err := ToImproper(b)
	if err != nil {
		return MixedNumber{}, relabel(err, "b")
	}
	f, err := Combine(fa, fb, op)
	if err != nil {
		return MixedNumber{}, err
	}
	return ToMixed(f)
}

// Float returns the nearest float64 to m.
func (m MixedNumber) Float() float64 {
	f, err := ToImproper(m)
	if err != nil {
		return float64(m.Whole) + float64(m.Numerator)/float64(m.Denominator)
	}
	return f.Float()
}

// String renders m as "w n/d", "w" or "n/d".
func (m MixedNumber) String() string {
	frac := strconv.FormatInt(m.Numerator, 10) + "/" + strconv.FormatInt(m.Denominator, 10)
	switch {
	case m.Numerator == 0:
		return strconv.FormatInt(m.Whole, 10)
	case m.Whole == 0:
		return frac
	default:
		return strconv.FormatInt(m.Whole, 10) + " " + frac
	}
}

// relabel attributes a calculation error to a single operand field.
func relabel(err error, field string) error {
	var e *calcerr.Error
	if !errors.As(err, &e) {
		return err
	}
	return calcerr.New(e.Kind, e.Message, field)
}
