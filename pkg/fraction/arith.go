package fraction

import (
	"math/big"
	"strings"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
)

// Op is a binary fraction operation.
type Op string

const (
	Add Op = "add"
	Sub Op = "sub"
	Mul Op = "mul"
	Div Op = "div"
)

// Ops lists the supported operations.
var Ops = []Op{Add, Sub, Mul, Div}

// ParseOp resolves an operation name or symbol.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "+", "plus":
		return Add, nil
	case "sub", "subtract", "-", "minus":
		return Sub, nil
	case "mul", "multiply", "*", "x", "×", "times":
		return Mul, nil
	case "div", "divide", "/", "÷":
		return Div, nil
	default:
		return "", calcerr.Newf(calcerr.InvalidInput, []string{"op"}, "unsupported operation %q", s)
	}
}

// Symbol returns the arithmetic symbol for op.
func (op Op) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "×"
	case Div:
		return "÷"
	default:
		return string(op)
	}
}

// Combine applies op to a and b and returns the simplified result.
// Intermediates are exact; a result outside the int64 range is an
// InvalidInput error.
func Combine(a, b Fraction, op Op) (Fraction, error) {
	ra, err := toRat(a, "a")
	if err != nil {
		return Fraction{}, err
	}
	rb, err := toRat(b, "b")
	if err != nil {
		return Fraction{}, err
	}

	r := new(big.Rat)
	switch op {
	case Add:
		r.Add(ra, rb)
	case Sub:
		r.Sub(ra, rb)
	case Mul:
		r.Mul(ra, rb)
	case Div:
		if rb.Sign() == 0 {
			return Fraction{}, calcerr.New(calcerr.DivisionByZero, "cannot divide by a zero fraction", "b")
		}
		r.Quo(ra, rb)
	default:
		return Fraction{}, calcerr.Newf(calcerr.InvalidInput, []string{"op"}, "unsupported operation %q", op)
	}

	return fromRat(r, "a", "b")
}

func toRat(f Fraction, field string) (*big.Rat, error) {
	if f.Denominator == 0 {
		return nil, calcerr.New(calcerr.DivisionByZero, "denominator is zero", field)
	}
	return big.NewRat(f.Numerator, f.Denominator), nil
}

// fromRat narrows an exact result back to int64. big.Rat keeps values in
// lowest terms with a positive denominator.
func fromRat(r *big.Rat, fields ...string) (Fraction, error) {
	num, den := r.Num(), r.Denom()
	if !num.IsInt64() || !den.IsInt64() {
		return Fraction{}, calcerr.New(calcerr.InvalidInput, "result exceeds 64-bit range", fields...)
	}
	return Simplify(num.Int64(), den.Int64())
}
