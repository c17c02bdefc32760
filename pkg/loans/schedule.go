package loans

import (
	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/shopspring/decimal"
)

// workingPlaces bounds the digits carried between periods; exact decimal
// multiplication would otherwise grow the coefficient every period.
const workingPlaces = 10

type entry struct {
	payment   decimal.Decimal
	principal decimal.Decimal
	interest  decimal.Decimal
	balance   decimal.Decimal
}

// Schedule is an amortization schedule whose displayed columns are in cents.
type Schedule struct {
	regular decimal.Decimal
	entries []entry
}

// GenerateSchedule builds a schedule of exactly periods entries.
//
// The loan is amortized at working precision with the unrounded payment; the
// final period retires whatever balance remains. Displayed balances and
// interest are rounded to the cent and each displayed principal is the drop in
// displayed balance, so the principal column sums to the loan amount exactly,
// the last balance is 0.00, and every row satisfies payment = principal +
// interest.
func GenerateSchedule(principal decimal.Decimal, annualInterestRate float64, periodsPerYear int, payment decimal.Decimal, periods int) Schedule {
	schedule := Schedule{regular: payment.Round(constants.CurrencyPlaces)}
	if periods <= 0 || periodsPerYear <= 0 || !principal.IsPositive() {
		return schedule
	}

	schedule.entries = make([]entry, 0, periods)
	balance := principal
	shown := principal.Round(constants.CurrencyPlaces)
	for period := 1; period <= periods; period++ {
		interest := CalculateInterestPayment(balance, annualInterestRate, periodsPerYear)
		principalPart := payment.Sub(interest)
		if period == periods || principalPart.GreaterThan(balance) {
			principalPart = balance
		}
		balance = balance.Sub(principalPart).Round(workingPlaces)

		nextShown := balance.Round(constants.CurrencyPlaces)
		shownInterest := interest.Round(constants.CurrencyPlaces)
		shownPrincipal := shown.Sub(nextShown)
		schedule.entries = append(schedule.entries, entry{
			payment:   shownPrincipal.Add(shownInterest),
			principal: shownPrincipal,
			interest:  shownInterest,
			balance:   nextShown,
		})
		shown = nextShown
	}

	return schedule
}

// Len returns the number of periods in the schedule.
func (s Schedule) Len() int {
	return len(s.entries)
}

// RegularPayment returns the payment due each period, rounded to the cent.
func (s Schedule) RegularPayment() decimal.Decimal {
	return s.regular
}

// Totals returns the sum of the payment and interest columns.
func (s Schedule) Totals() (payments, interest decimal.Decimal) {
	payments, interest = decimal.Zero, decimal.Zero
	for _, e := range s.entries {
		payments = payments.Add(e.payment)
		interest = interest.Add(e.interest)
	}
	return payments, interest
}

// Payments converts the schedule into Payment records numbered from 1.
func (s Schedule) Payments() []Payment {
	payments := make([]Payment, len(s.entries))
	for i, e := range s.entries {
		payments[i] = Payment{
			Period:    i + 1,
			Payment:   e.payment.InexactFloat64(),
			Principal: e.principal.InexactFloat64(),
			Interest:  e.interest.InexactFloat64(),
			Balance:   e.balance.InexactFloat64(),
		}
	}
	return payments
}
