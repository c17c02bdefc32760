package fraction

import (
	"strconv"
	"strings"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/shopspring/decimal"
)

// Parse reads a fraction ("3/4", "-6/8"), a mixed number ("2 3/4", "-2 3/4"),
// an integer ("5") or a decimal ("0.75") and returns it simplified. Decimals
// keep at most nine fractional digits.
func Parse(s string) (Fraction, error) {
	parts := strings.Fields(s)
	switch len(parts) {
	case 1:
		return parseSingle(parts[0])
	case 2:
		return parseMixed(parts[0], parts[1])
	default:
		return Fraction{}, invalidText(s)
	}
}

// ParseMixed is Parse returning a normalized mixed number.
func ParseMixed(s string) (MixedNumber, error) {
	f, err := Parse(s)
	if err != nil {
		return MixedNumber{}, err
	}
	return ToMixed(f)
}

func parseSingle(s string) (Fraction, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseInt(num, 10, 64)
		d, err2 := strconv.ParseInt(den, 10, 64)
		if err1 != nil || err2 != nil {
			return Fraction{}, invalidText(s)
		}
		return Simplify(n, d)
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Integer(n), nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Fraction{}, invalidText(s)
	}
	places := -d.Exponent()
	if places < 1 {
		places = 1
	}
	if places > constants.MaxFractionDecimalPlaces {
		places = constants.MaxFractionDecimalPlaces
	}
	return fromDecimal(d, places)
}

func parseMixed(wholeText, fracText string) (Fraction, error) {
	whole, err := strconv.ParseInt(wholeText, 10, 64)
	if err != nil {
		return Fraction{}, invalidText(wholeText + " " + fracText)
	}
	num, den, ok := strings.Cut(fracText, "/")
	if !ok {
		return Fraction{}, invalidText(wholeText + " " + fracText)
	}
	n, err1 := strconv.ParseUint(num, 10, 63)
	d, err2 := strconv.ParseUint(den, 10, 63)
	if err1 != nil || err2 != nil {
		return Fraction{}, invalidText(wholeText + " " + fracText)
	}
	if strings.HasPrefix(wholeText, "-") && whole == 0 {
		// "-0 3/4" carries its sign on the fraction.
		return ToImproper(MixedNumber{Numerator: -int64(n), Denominator: int64(d)})
	}
	return ToImproper(MixedNumber{Whole: whole, Numerator: int64(n), Denominator: int64(d)})
}

func invalidText(s string) error {
	return calcerr.Newf(calcerr.InvalidInput, []string{"value"}, "cannot parse %q as a fraction", s)
}
