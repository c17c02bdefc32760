// Package fraction implements exact rational arithmetic on int64 fractions
// and mixed numbers, with conversion to and from decimals.
//
// Every Fraction returned by this package is simplified: its denominator is
// positive and gcd(|numerator|, denominator) is 1. Zero is 0/1.
package fraction

import (
	"math"
	"strconv"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
)

// Fraction is numerator/denominator.
type Fraction struct {
	Numerator   int64 `json:"numerator" yaml:"numerator" mapstructure:"numerator"`
	Denominator int64 `json:"denominator" yaml:"denominator" mapstructure:"denominator"`
}

// GCD returns the greatest common divisor of |a| and |b|. GCD(a, 0) is |a|
// and GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Simplify reduces n/d to lowest terms with a positive denominator.
func Simplify(n, d int64) (Fraction, error) {
	if d == 0 {
		return Fraction{}, calcerr.New(calcerr.DivisionByZero, "denominator is zero", "denominator")
	}
	if n == math.MinInt64 || d == math.MinInt64 {
		return Fraction{}, calcerr.New(calcerr.InvalidInput, "value exceeds 64-bit range", "numerator", "denominator")
	}
	if n == 0 {
		return Fraction{Numerator: 0, Denominator: 1}, nil
	}

	g := GCD(n, d)
	n, d = n/g, d/g
	if d < 0 {
		n, d = -n, -d
	}
	return Fraction{Numerator: n, Denominator: d}, nil
}

// New returns the simplified fraction n/d.
func New(n, d int64) (Fraction, error) {
	return Simplify(n, d)
}

// Integer returns n/1.
func Integer(n int64) Fraction {
	return Fraction{Numerator: n, Denominator: 1}
}

// Simplify returns f in lowest terms.
func (f Fraction) Simplify() (Fraction, error) {
	return Simplify(f.Numerator, f.Denominator)
}

// Float returns the nearest float64 to f. A zero denominator yields NaN or an infinity.
func (f Fraction) Float() float64 {
	return float64(f.Numerator) / float64(f.Denominator)
}

// IsInteger reports whether f has denominator 1.
func (f Fraction) IsInteger() bool {
	return f.Denominator == 1
}

// String renders f as "n/d", or "n" for whole values.
func (f Fraction) String() string {
	if f.Denominator == 1 {
		return strconv.FormatInt(f.Numerator, 10)
	}
	return strconv.FormatInt(f.Numerator, 10) + "/" + strconv.FormatInt(f.Denominator, 10)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int64) int64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
