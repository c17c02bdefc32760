// Package frequency defines the payment and contribution frequencies shared
// by the loan and ROI calculators.
package frequency

import (
	"fmt"
	"strings"

	"github.com/iwvelando/calc-engine/pkg/constants"
)

// Frequency is how often a periodic payment or contribution occurs.
type Frequency string

const (
	Weekly      Frequency = "weekly"
	Biweekly    Frequency = "biweekly"
	SemiMonthly Frequency = "semimonthly"
	Monthly     Frequency = "monthly"
	Quarterly   Frequency = "quarterly"
	Annually    Frequency = "annually"
)

var periodsPerYear = map[Frequency]int{
	Weekly:      52,
	Biweekly:    26,
	SemiMonthly: 24,
	Monthly:     constants.MonthsPerYear,
	Quarterly:   4,
	Annually:    1,
}

var aliases = map[string]Frequency{
	"fortnightly": Biweekly,
	"yearly":      Annually,
	"annual":      Annually,
}

// Parse resolves a frequency name. An empty name is Monthly.
func Parse(name string) (Frequency, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Monthly, nil
	}
	if alias, ok := aliases[key]; ok {
		return alias, nil
	}
	f := Frequency(key)
	if _, ok := periodsPerYear[f]; !ok {
		return "", fmt.Errorf("unsupported frequency %q", name)
	}
	return f, nil
}

// PeriodsPerYear returns the number of occurrences per year, or 0 for an
// unknown frequency.
func (f Frequency) PeriodsPerYear() int {
	return periodsPerYear[f]
}
