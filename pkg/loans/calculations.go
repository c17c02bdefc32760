// Package loans provides loan payment and amortization schedule calculations.
package loans

import (
	"math"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/iwvelando/calc-engine/pkg/frequency"
	"github.com/iwvelando/calc-engine/pkg/validation"
	"github.com/shopspring/decimal"
)

// Inputs holds the parameters of a fixed-rate amortizing loan.
type Inputs struct {
	LoanAmount       float64 `json:"loanAmount" yaml:"loanAmount" mapstructure:"loanAmount" validate:"finite,gt=0"`
	InterestRate     float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate" validate:"finite,gte=0,lte=100"` // annual %
	LoanTerm         int     `json:"loanTerm" yaml:"loanTerm" mapstructure:"loanTerm" validate:"gte=1,lte=50"`                     // years
	PaymentFrequency string  `json:"paymentFrequency,omitempty" yaml:"paymentFrequency,omitempty" mapstructure:"paymentFrequency"`
}

// Payment holds the values for a given payment.
type Payment struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// Results holds the payment amount, totals and the amortization schedule.
// MonthlyPayment is the regular per-period payment; for non-monthly
// frequencies it is the payment due each period.
type Results struct {
	MonthlyPayment       float64             `json:"monthlyPayment"`
	TotalPayment         float64             `json:"totalPayment"`
	TotalInterest        float64             `json:"totalInterest"`
	NumberOfPayments     int                 `json:"numberOfPayments"`
	PaymentFrequency     frequency.Frequency `json:"paymentFrequency"`
	AmortizationSchedule []Payment           `json:"amortizationSchedule"`
}

// CalculatePeriodicPayment calculates the payment due each period when the
// annual rate is compounded periodsPerYear times a year over periods payments.
func CalculatePeriodicPayment(principal, annualInterestRate float64, periodsPerYear, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// (1+0)^n - 1 is zero, so the formula degenerates to an even split.
		return principal / float64(periods)
	}

	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * float64(periodsPerYear))
	// growth is (1+r)^n - 1, taken through log1p/expm1 so tiny rates do not collapse to zero.
	growth := math.Expm1(float64(periods) * math.Log1p(periodicInterestRate))
	if growth == 0 {
		return principal / float64(periods)
	}
	return principal * periodicInterestRate * (1 + growth) / growth
}

// CalculateInterestPayment calculates the interest accrued on the remaining
// principal over one of periodsPerYear periods, at working precision.
func CalculateInterestPayment(remainingPrincipal decimal.Decimal, annualInterestRate float64, periodsPerYear int) decimal.Decimal {
	rate := decimal.NewFromFloat(annualInterestRate).
		Div(decimal.NewFromFloat(constants.PercentageMultiplier)).
		Div(decimal.NewFromInt(int64(periodsPerYear)))
	return remainingPrincipal.Mul(rate).Round(workingPlaces)
}

// Calculate validates the inputs, computes the regular payment and builds the
// full amortization schedule.
func Calculate(in Inputs) (Results, error) {
	freq, err := frequency.Parse(in.PaymentFrequency)
	if err != nil {
		return Results{}, calcerr.Invalid("paymentFrequency", err.Error())
	}
	if err := validation.Struct(in); err != nil {
		return Results{}, err
	}

	principal := decimal.NewFromFloat(in.LoanAmount).Round(constants.CurrencyPlaces)
	if !principal.IsPositive() {
		return Results{}, calcerr.Invalid("loanAmount", "loanAmount must be at least 0.01")
	}

	periodsPerYear := freq.PeriodsPerYear()
	periods := in.LoanTerm * periodsPerYear

	payment := CalculatePeriodicPayment(principal.InexactFloat64(), in.InterestRate, periodsPerYear, periods)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return Results{}, calcerr.New(calcerr.UndefinedResult,
			"payment is not representable for this rate and term", "interestRate", "loanTerm")
	}

	schedule := GenerateSchedule(principal, in.InterestRate, periodsPerYear, decimal.NewFromFloat(payment), periods)
	totalPayment, totalInterest := schedule.Totals()

	return Results{
		MonthlyPayment:       schedule.RegularPayment().InexactFloat64(),
		TotalPayment:         totalPayment.InexactFloat64(),
		TotalInterest:        totalInterest.InexactFloat64(),
		NumberOfPayments:     periods,
		PaymentFrequency:     freq,
		AmortizationSchedule: schedule.Payments(),
	}, nil
}
