// Package roi calculates return on investment, net profit and payback period.
//
// Two input variants are supported. A cashflow investment produces an annual
// revenue against annual running costs; a growth investment is valued at a
// final amount after optional periodic contributions. The variant is chosen by
// Mode, or inferred from FinalValue when Mode is empty.
package roi

import (
	"math"
	"strings"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/iwvelando/calc-engine/pkg/frequency"
	"github.com/iwvelando/calc-engine/pkg/mathutil"
	"github.com/iwvelando/calc-engine/pkg/validation"
)

// Mode selects the ROI input variant.
type Mode string

const (
	ModeCashflow Mode = "cashflow"
	ModeGrowth   Mode = "growth"
)

// Inputs holds the parameters of an investment. Monetary amounts share one
// currency; Timeframe is in years.
type Inputs struct {
	Mode                   Mode    `json:"mode,omitempty" yaml:"mode,omitempty" mapstructure:"mode" validate:"omitempty,oneof=cashflow growth"`
	InitialInvestment      float64 `json:"initialInvestment" yaml:"initialInvestment" mapstructure:"initialInvestment" validate:"finite,gte=0"`
	AnnualRevenue          float64 `json:"annualRevenue,omitempty" yaml:"annualRevenue,omitempty" mapstructure:"annualRevenue" validate:"finite,gte=0"`
	AnnualCosts            float64 `json:"annualCosts,omitempty" yaml:"annualCosts,omitempty" mapstructure:"annualCosts" validate:"finite,gte=0"`
	FinalValue             float64 `json:"finalValue,omitempty" yaml:"finalValue,omitempty" mapstructure:"finalValue" validate:"finite,gte=0"`
	Timeframe              float64 `json:"timeframe" yaml:"timeframe" mapstructure:"timeframe" validate:"finite,gt=0,lte=100"`
	AdditionalContribution float64 `json:"additionalContribution,omitempty" yaml:"additionalContribution,omitempty" mapstructure:"additionalContribution" validate:"finite,gte=0"`
	ContributionFrequency  string  `json:"contributionFrequency,omitempty" yaml:"contributionFrequency,omitempty" mapstructure:"contributionFrequency"`
}

// Results holds the computed returns, rounded to cents / hundredths of a
// percent. PaybackPeriod is nil when a growth investment never recovers its
// cost at its average annual gain.
type Results struct {
	Mode          Mode     `json:"mode"`
	ROI           float64  `json:"roi"`
	AnnualizedROI float64  `json:"annualizedRoi"`
	NetProfit     float64  `json:"netProfit"`
	TotalInvested float64  `json:"totalInvested"`
	TotalReturn   float64  `json:"totalReturn"`
	PaybackPeriod *float64 `json:"paybackPeriod,omitempty"` // years
}

// Calculate evaluates the investment.
func Calculate(in Inputs) (Results, error) {
	in.Mode = Mode(strings.ToLower(strings.TrimSpace(string(in.Mode))))
	if in.Mode == "" {
		in.Mode = ModeCashflow
		if in.FinalValue > 0 {
			in.Mode = ModeGrowth
		}
	}
	if err := validation.Struct(in); err != nil {
		return Results{}, err
	}
	if in.InitialInvestment == 0 {
		return Results{}, calcerr.New(calcerr.UndefinedResult,
			"ROI is undefined for a zero initial investment", "initialInvestment")
	}

	if in.Mode == ModeGrowth {
		return growth(in)
	}
	return cashflow(in)
}

func cashflow(in Inputs) (Results, error) {
	var contributionFields []string
	if in.AdditionalContribution != 0 {
		contributionFields = append(contributionFields, "additionalContribution")
	}
	if strings.TrimSpace(in.ContributionFrequency) != "" {
		contributionFields = append(contributionFields, "contributionFrequency")
	}
	if len(contributionFields) > 0 {
		return Results{}, calcerr.New(calcerr.InvalidInput,
			"contributions apply only to growth investments", contributionFields...)
	}

	annualGain := in.AnnualRevenue - in.AnnualCosts
	if annualGain <= 0 {
		return Results{}, calcerr.New(calcerr.UndefinedResult,
			"payback period is undefined unless annualRevenue exceeds annualCosts", "annualRevenue", "annualCosts")
	}

	totalRevenue := in.AnnualRevenue * in.Timeframe
	totalCosts := in.InitialInvestment + in.AnnualCosts*in.Timeframe
	netProfit := totalRevenue - totalCosts
	roi := netProfit / in.InitialInvestment * constants.PercentageMultiplier
	payback := mathutil.Round(in.InitialInvestment / annualGain)
	annualized := annualize(roi, in.Timeframe)
	if !mathutil.AllFinite(totalRevenue, totalCosts, netProfit, roi, annualized, payback) {
		return Results{}, calcerr.New(calcerr.UndefinedResult,
			"returns are too large to represent", "initialInvestment", "annualRevenue", "annualCosts")
	}

	return Results{
		Mode:          ModeCashflow,
		ROI:           mathutil.Round(roi),
		AnnualizedROI: mathutil.Round(annualized),
		NetProfit:     mathutil.Round(netProfit),
		TotalInvested: mathutil.Round(totalCosts),
		TotalReturn:   mathutil.Round(totalRevenue),
		PaybackPeriod: &payback,
	}, nil
}

func growth(in Inputs) (Results, error) {
	freq, err := frequency.Parse(in.ContributionFrequency)
	if err != nil {
		return Results{}, calcerr.Invalid("contributionFrequency", err.Error())
	}

	contributions := in.AdditionalContribution * float64(freq.PeriodsPerYear()) * in.Timeframe
	totalInvested := in.InitialInvestment + contributions
	netProfit := in.FinalValue - totalInvested
	roi := netProfit / totalInvested * constants.PercentageMultiplier
	annualized := annualize(roi, in.Timeframe)
	if !mathutil.AllFinite(contributions, totalInvested, netProfit, roi, annualized) {
		return Results{}, calcerr.New(calcerr.UndefinedResult,
			"returns are too large to represent", "initialInvestment", "finalValue", "additionalContribution")
	}

	results := Results{
		Mode:          ModeGrowth,
		ROI:           mathutil.Round(roi),
		AnnualizedROI: mathutil.Round(annualized),
		NetProfit:     mathutil.Round(netProfit),
		TotalInvested: mathutil.Round(totalInvested),
		TotalReturn:   mathutil.Round(in.FinalValue),
	}

	if averageGain := netProfit / in.Timeframe; averageGain > 0 {
		payback := mathutil.Round(totalInvested / averageGain)
		results.PaybackPeriod = &payback
	}
	return results, nil
}

// annualize converts a total return over years into a compound annual rate.
func annualize(roi, years float64) float64 {
	growthFactor := 1 + roi/constants.PercentageMultiplier
	if growthFactor <= 0 {
		return -constants.PercentageMultiplier
	}
	return (math.Pow(growthFactor, 1/years) - 1) * constants.PercentageMultiplier
}
