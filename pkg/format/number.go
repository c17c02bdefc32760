package format

import (
	"math"
	"strconv"
	"strings"
)

// Number formats value with at most places decimals, dropping trailing zeros
// and grouping thousands (e.g., 1234.5 -> "1,234.5", 2.0 -> "2").
func Number(value float64, places int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	if places < 0 {
		places = 0
	}

	formatted := strconv.FormatFloat(math.Abs(value), 'f', places, 64)
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(strings.TrimRight(formatted, "0"), ".")
	}

	parts := strings.SplitN(formatted, ".", 2)
	out := groupThousands(parts[0])
	if len(parts) == 2 {
		out += "." + parts[1]
	}
	if value < 0 && out != "0" {
		out = "-" + out
	}
	return out
}

// Percent formats value as a percentage with up to two decimals (e.g., "12.5%").
func Percent(value float64) string {
	return Number(value, 2) + "%"
}
