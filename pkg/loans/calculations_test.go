package loans

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/frequency"
	"github.com/shopspring/decimal"
)

func TestCalculatePeriodicPayment_Monthly(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         int
		expectedRange      []float64 // [min, max] expected range
	}{
		{
			name:               "Standard 30-year mortgage",
			principal:          240000,
			annualInterestRate: 6.0,
			termMonths:         360,
			expectedRange:      []float64{1400, 1500}, // Around $1439
		},
		{
			name:               "5-year car loan",
			principal:          20000,
			annualInterestRate: 4.0,
			termMonths:         60,
			expectedRange:      []float64{360, 380}, // Around $368
		},
		{
			name:               "Zero interest loan",
			principal:          10000,
			annualInterestRate: 0.0,
			termMonths:         60,
			expectedRange:      []float64{166, 167}, // Exactly $166.67
		},
		{
			name:               "High interest loan",
			principal:          10000,
			annualInterestRate: 18.0,
			termMonths:         36,
			expectedRange:      []float64{360, 380}, // Around $372
		},
		{
			name:               "No periods",
			principal:          10000,
			annualInterestRate: 5.0,
			termMonths:         0,
			expectedRange:      []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePeriodicPayment(tt.principal, tt.annualInterestRate, 12, tt.termMonths)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculatePeriodicPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculatePeriodicPayment(t *testing.T) {
	// Biweekly payments on 26 periods a year are a little over half the monthly payment.
	monthly := CalculatePeriodicPayment(250000, 5.5, 12, 360)
	biweekly := CalculatePeriodicPayment(250000, 5.5, 26, 780)
	if biweekly <= monthly/2.2 || biweekly >= monthly/2 {
		t.Errorf("biweekly payment %.2f not in expected band for monthly %.2f", biweekly, monthly)
	}
}

func TestCalculatePeriodicPayment_TinyRate(t *testing.T) {
	// 1 + r rounds to 1 for a rate this small; the payment must still be the even split.
	payment := CalculatePeriodicPayment(12000, 1e-17, 12, 12)
	if math.IsInf(payment, 0) || math.IsNaN(payment) {
		t.Fatalf("CalculatePeriodicPayment() = %v, expected a finite payment", payment)
	}
	if math.Abs(payment-1000) > 0.01 {
		t.Errorf("CalculatePeriodicPayment() = %.2f, expected 1000.00", payment)
	}

	results, err := Calculate(Inputs{LoanAmount: 12000, InterestRate: 1e-17, LoanTerm: 1})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if results.MonthlyPayment != 1000 {
		t.Errorf("MonthlyPayment = %.2f, expected 1000.00", results.MonthlyPayment)
	}
	if final := results.AmortizationSchedule[11]; final.Balance != 0 {
		t.Errorf("final balance = %.2f, expected 0.00", final.Balance)
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualInterestRate float64
		expected           float64
	}{
		{
			name:               "Standard mortgage interest",
			remainingPrincipal: 200000,
			annualInterestRate: 6.0,
			expected:           1000.0, // 200000 * 0.06 / 12
		},
		{
			name:               "Car loan interest",
			remainingPrincipal: 15000,
			annualInterestRate: 4.5,
			expected:           56.25, // 15000 * 0.045 / 12
		},
		{
			name:               "Zero interest",
			remainingPrincipal: 10000,
			annualInterestRate: 0.0,
			expected:           0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(decimal.NewFromFloat(tt.remainingPrincipal), tt.annualInterestRate, 12).InexactFloat64()

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestCalculate_Mortgage(t *testing.T) {
	results, err := Calculate(Inputs{LoanAmount: 250000, InterestRate: 5.5, LoanTerm: 30, PaymentFrequency: "monthly"})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if results.MonthlyPayment != 1419.47 {
		t.Errorf("MonthlyPayment = %.2f, expected 1419.47", results.MonthlyPayment)
	}
	if len(results.AmortizationSchedule) != 360 {
		t.Fatalf("schedule length = %d, expected 360", len(results.AmortizationSchedule))
	}
	if results.NumberOfPayments != 360 {
		t.Errorf("NumberOfPayments = %d, expected 360", results.NumberOfPayments)
	}
	if results.PaymentFrequency != frequency.Monthly {
		t.Errorf("PaymentFrequency = %s, expected monthly", results.PaymentFrequency)
	}

	first := results.AmortizationSchedule[0]
	if first.Period != 1 || first.Interest != 1145.83 || first.Principal != 273.64 {
		t.Errorf("unexpected first payment: %+v", first)
	}

	last := results.AmortizationSchedule[359]
	if last.Balance != 0 {
		t.Errorf("final balance = %.2f, expected 0.00", last.Balance)
	}
	if math.Abs(last.Payment-results.MonthlyPayment) > 0.05 {
		t.Errorf("final payment %.2f drifted from regular payment %.2f", last.Payment, results.MonthlyPayment)
	}

	// 360 * 1419.47 = 511,009.20, within a few cents of rounding.
	if math.Abs(results.TotalPayment-511009.20) > 1.0 {
		t.Errorf("TotalPayment = %.2f, expected about 511009.20", results.TotalPayment)
	}
	if math.Abs(results.TotalPayment-results.TotalInterest-250000) > 0.001 {
		t.Errorf("TotalPayment - TotalInterest = %.2f, expected the loan amount",
			results.TotalPayment-results.TotalInterest)
	}
}

func TestCalculate_ZeroInterest(t *testing.T) {
	results, err := Calculate(Inputs{LoanAmount: 1000, InterestRate: 0, LoanTerm: 1})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if results.MonthlyPayment != 83.33 {
		t.Errorf("MonthlyPayment = %.2f, expected 83.33", results.MonthlyPayment)
	}
	if results.TotalInterest != 0 {
		t.Errorf("TotalInterest = %.2f, expected 0", results.TotalInterest)
	}
	if results.TotalPayment != 1000 {
		t.Errorf("TotalPayment = %.2f, expected 1000", results.TotalPayment)
	}
	for _, p := range results.AmortizationSchedule {
		if p.Interest != 0 {
			t.Errorf("period %d interest = %.2f, expected 0", p.Period, p.Interest)
		}
		if math.Abs(p.Principal-83.33) > 0.011 {
			t.Errorf("period %d principal = %.2f, expected about 83.33", p.Period, p.Principal)
		}
	}
}

func TestCalculate_Frequencies(t *testing.T) {
	tests := []struct {
		frequency string
		periods   int
	}{
		{"weekly", 52 * 15},
		{"biweekly", 26 * 15},
		{"semimonthly", 24 * 15},
		{"monthly", 12 * 15},
		{"quarterly", 4 * 15},
		{"annually", 15},
	}

	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			results, err := Calculate(Inputs{LoanAmount: 180000, InterestRate: 6.25, LoanTerm: 15, PaymentFrequency: tt.frequency})
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if len(results.AmortizationSchedule) != tt.periods {
				t.Errorf("schedule length = %d, expected %d", len(results.AmortizationSchedule), tt.periods)
			}
			if results.AmortizationSchedule[tt.periods-1].Balance != 0 {
				t.Errorf("final balance not zero")
			}
		})
	}
}

func TestCalculate_InvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		input  Inputs
		fields []string
	}{
		{"Zero amount", Inputs{LoanAmount: 0, InterestRate: 5, LoanTerm: 10}, []string{"loanAmount"}},
		{"Negative amount", Inputs{LoanAmount: -5, InterestRate: 5, LoanTerm: 10}, []string{"loanAmount"}},
		{"Sub-cent amount", Inputs{LoanAmount: 0.001, InterestRate: 5, LoanTerm: 10}, []string{"loanAmount"}},
		{"Negative rate", Inputs{LoanAmount: 1000, InterestRate: -1, LoanTerm: 10}, []string{"interestRate"}},
		{"Rate above 100", Inputs{LoanAmount: 1000, InterestRate: 150, LoanTerm: 10}, []string{"interestRate"}},
		{"NaN rate", Inputs{LoanAmount: 1000, InterestRate: math.NaN(), LoanTerm: 10}, []string{"interestRate"}},
		{"Zero term", Inputs{LoanAmount: 1000, InterestRate: 5, LoanTerm: 0}, []string{"loanTerm"}},
		{"Term too long", Inputs{LoanAmount: 1000, InterestRate: 5, LoanTerm: 51}, []string{"loanTerm"}},
		{"Unknown frequency", Inputs{LoanAmount: 1000, InterestRate: 5, LoanTerm: 10, PaymentFrequency: "daily"}, []string{"paymentFrequency"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.input)
			if !errors.Is(err, calcerr.ErrInvalidInput) {
				t.Fatalf("Calculate() error = %v, expected invalid input", err)
			}
			fields := calcerr.FieldsOf(err)
			if len(fields) != len(tt.fields) || fields[0] != tt.fields[0] {
				t.Errorf("fields = %v, expected %v", fields, tt.fields)
			}
		})
	}
}

func TestCalculate_AmortizationConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	frequencies := []string{"weekly", "biweekly", "monthly", "quarterly", "annually"}

	for i := 0; i < 200; i++ {
		in := Inputs{
			LoanAmount:       math.Round((100+rng.Float64()*999900)*100) / 100,
			InterestRate:     math.Round(rng.Float64()*2500) / 100,
			LoanTerm:         1 + rng.Intn(40),
			PaymentFrequency: frequencies[rng.Intn(len(frequencies))],
		}
		if rng.Intn(10) == 0 {
			in.InterestRate = 0
		}

		results, err := Calculate(in)
		if err != nil {
			t.Fatalf("Calculate(%+v) error = %v", in, err)
		}

		expectedLen := in.LoanTerm * frequency.Frequency(in.PaymentFrequency).PeriodsPerYear()
		if len(results.AmortizationSchedule) != expectedLen {
			t.Fatalf("Calculate(%+v) schedule length = %d, expected %d", in, len(results.AmortizationSchedule), expectedLen)
		}

		sum := 0.0
		for _, p := range results.AmortizationSchedule {
			sum += p.Principal
			if math.Abs(p.Payment-(p.Principal+p.Interest)) > 0.001 {
				t.Fatalf("Calculate(%+v) period %d payment %.2f != principal %.2f + interest %.2f",
					in, p.Period, p.Payment, p.Principal, p.Interest)
			}
		}
		if math.Abs(sum-in.LoanAmount) > 0.50 {
			t.Errorf("Calculate(%+v) principal sum = %.2f, expected %.2f", in, sum, in.LoanAmount)
		}
		if final := results.AmortizationSchedule[len(results.AmortizationSchedule)-1].Balance; final != 0 {
			t.Errorf("Calculate(%+v) final balance = %.2f, expected 0.00", in, final)
		}
	}
}
