package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/calc-engine/pkg/bmi"
	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/calorie"
	"github.com/iwvelando/calc-engine/pkg/format"
	"github.com/iwvelando/calc-engine/pkg/fraction"
	"github.com/iwvelando/calc-engine/pkg/loans"
	"github.com/iwvelando/calc-engine/pkg/percentage"
	"github.com/iwvelando/calc-engine/pkg/petfood"
	"github.com/iwvelando/calc-engine/pkg/roi"
)

func registry() []calculator {
	return []calculator{
		{
			info: Info{
				Type:        TypeROI,
				Description: "Return on investment, net profit and payback period",
				Inputs:      []string{"mode", "initialInvestment", "annualRevenue", "annualCosts", "finalValue", "timeframe", "additionalContribution", "contributionFrequency"},
			},
			run: runROI,
		},
		{
			info: Info{
				Type:        TypeLoan,
				Description: "Loan payment, totals and amortization schedule",
				Inputs:      []string{"loanAmount", "interestRate", "loanTerm", "paymentFrequency"},
			},
			run: runLoan,
		},
		{
			info: Info{
				Type:        TypeBMI,
				Description: "Body-mass index, category and healthy weight range",
				Inputs:      []string{"weight", "height", "unit"},
			},
			run: runBMI,
		},
		{
			info: Info{
				Type:        TypeCalorie,
				Description: "Basal metabolic rate, daily calories and macronutrients",
				Inputs:      []string{"age", "gender", "weight", "height", "unit", "activityLevel", "goal"},
			},
			run: runCalorie,
		},
		{
			info: Info{
				Type:        TypePetFood,
				Description: "Daily calories and food portions for dogs and cats",
				Inputs:      []string{"petType", "weight", "age", "activityLevel", "unit", "foodType", "mealsPerDay"},
			},
			run: runPetFood,
		},
		{
			info: Info{
				Type:        TypePercentage,
				Description: "Percentage, value, total and percentage change",
				Inputs:      []string{"calculationType", "value1", "value2"},
			},
			run: runPercentage,
		},
		{
			info: Info{
				Type:        TypeFraction,
				Description: "Fraction simplification, arithmetic and decimal conversion",
				Inputs:      []string{"operation", "a", "b", "op", "value", "places"},
			},
			run: runFraction,
		},
	}
}

func runROI(_ Options, inputs map[string]interface{}) (interface{}, []Line, error) {
	var in roi.Inputs
	if err := decodeInputs(inputs, &in); err != nil {
		return nil, nil, err
	}
	res, err := roi.Calculate(in)
	if err != nil {
		return nil, nil, err
	}

	payback := "never"
	if res.PaybackPeriod != nil {
		payback = format.Number(*res.PaybackPeriod, 2) + " years"
	}
	return res, []Line{
		{"Mode", string(res.Mode)},
		{"ROI", format.Percent(res.ROI)},
		{"Annualized ROI", format.Percent(res.AnnualizedROI)},
		{"Net profit", format.Currency(res.NetProfit)},
		{"Total invested", format.Currency(res.TotalInvested)},
		{"Total return", format.Currency(res.TotalReturn)},
		{"Payback period", payback},
	}, nil
}

func runLoan(_ Options, inputs map[string]interface{}) (interface{}, []Line, error) {
	var in loans.Inputs
	if err := decodeInputs(inputs, &in); err != nil {
		return nil, nil, err
	}
	res, err := loans.Calculate(in)
	if err != nil {
		return nil, nil, err
	}

	return res, []Line{
		{"Payment (" + string(res.PaymentFrequency) + ")", format.Currency(res.MonthlyPayment)},
		{"Number of payments", strconv.Itoa(res.NumberOfPayments)},
		{"Total payment", format.Currency(res.TotalPayment)},
		{"Total interest", format.Currency(res.TotalInterest)},
	}, nil
}

func runBMI(_ Options, inputs map[string]interface{}) (interface{}, []Line, error) {
	var in bmi.Inputs
	if err := decodeInputs(inputs, &in); err != nil {
		return nil, nil, err
	}
	res, err := bmi.Calculate(in)
	if err != nil {
		return nil, nil, err
	}

	unit := res.Unit.WeightUnit()
	return res, []Line{
		{"BMI", format.Number(res.BMI, 2)},
		{"Category", string(res.Category)},
		{"Healthy weight", fmt.Sprintf("%s - %s %s",
			format.Number(res.HealthyWeightRange.Min, 2), format.Number(res.HealthyWeightRange.Max, 2), unit)},
		{"BMI prime", format.Number(res.BMIPrime, 2)},
	}, nil
}

func runCalorie(_ Options, inputs map[string]interface{}) (interface{}, []Line, error) {
	var in calorie.Inputs
	if err := decodeInputs(inputs, &in); err != nil {
		return nil, nil, err
	}
	res, err := calorie.Calculate(in)
	if err != nil {
		return nil, nil, err
	}

	return res, []Line{
		{"BMR", format.Number(res.BMR, 0) + " kcal"},
		{"Daily calories", format.Number(res.DailyCalories, 0) + " kcal"},
		{"Protein", format.Number(res.Macronutrients.Protein, 0) + " g"},
		{"Carbs", format.Number(res.Macronutrients.Carbs, 0) + " g"},
		{"Fats", format.Number(res.Macronutrients.Fats, 0) + " g"},
		{"Weekly change", format.Number(res.WeeklyGoal, 2) + " " + res.Unit.WeightUnit()},
	}, nil
}

func runPetFood(opts Options, inputs map[string]interface{}) (interface{}, []Line, error) {
	var in petfood.Inputs
	if err := decodeInputs(inputs, &in); err != nil {
		return nil, nil, err
	}
	if in.MealsPerDay == 0 && in.Age >= petfood.YoungBefore {
		in.MealsPerDay = opts.DefaultMealsPerDay
	}
	res, err := petfood.Calculate(in)
	if err != nil {
		return nil, nil, err
	}

	return res, []Line{
		{"Life stage", string(res.LifeStage)},
		{"Resting calories", format.Number(res.RestingCalories, 0) + " kcal"},
		{"Daily calories", format.Number(res.DailyCalories, 0) + " kcal"},
		{"Daily food", format.Number(res.FoodAmount, 2) + " " + res.AmountUnit},
		{"Meals per day", strconv.Itoa(res.MealsPerDay)},
		{"Per meal", format.Number(res.AmountPerMeal, 2) + " " + res.AmountUnit},
	}, nil
}

func runPercentage(_ Options, inputs map[string]interface{}) (interface{}, []Line, error) {
	var in percentage.Inputs
	if err := decodeInputs(inputs, &in); err != nil {
		return nil, nil, err
	}
	res, err := percentage.Calculate(in)
	if err != nil {
		return nil, nil, err
	}

	return res, []Line{
		{"Result", format.Number(res.Result, 2)},
		{"Formula", res.Formula},
		{"Explanation", res.Explanation},
	}, nil
}

// Fraction operations.
const (
	FractionSimplify    = "simplify"
	FractionCombine     = "combine"
	FractionToMixed     = "toMixed"
	FractionFromDecimal = "fromDecimal"
	FractionToDecimal   = "toDecimal"
)

// FractionInputs selects a fraction operation. A and B are fraction text
// such as "3/4", "-2 1/2", "5" or "0.75".
type FractionInputs struct {
	Operation string  `json:"operation" mapstructure:"operation"`
	A         string  `json:"a,omitempty" mapstructure:"a"`
	B         string  `json:"b,omitempty" mapstructure:"b"`
	Op        string  `json:"op,omitempty" mapstructure:"op"`
	Value     float64 `json:"value,omitempty" mapstructure:"value"`
	Places    int     `json:"places,omitempty" mapstructure:"places"`
}

// FractionOutput is the result of a fraction operation in every representation.
type FractionOutput struct {
	Operation   string               `json:"operation"`
	Expression  string               `json:"expression"`
	Result      fraction.Fraction    `json:"result"`
	Mixed       fraction.MixedNumber `json:"mixed"`
	Decimal     float64              `json:"decimal"`
	DecimalText string               `json:"decimalText"`
}

func runFraction(opts Options, inputs map[string]interface{}) (interface{}, []Line, error) {
	var in FractionInputs
	if err := decodeInputs(inputs, &in); err != nil {
		return nil, nil, err
	}

	operation := in.Operation
	if operation == "" {
		operation = FractionSimplify
		if in.B != "" {
			operation = FractionCombine
		}
	}

	var (
		result     fraction.Fraction
		expression string
		err        error
	)
	displayPlaces := opts.DecimalPlaces

	switch strings.ToLower(operation) {
	case strings.ToLower(FractionSimplify), strings.ToLower(FractionToMixed), strings.ToLower(FractionToDecimal):
		result, err = parseOperand(in.A, "a")
		expression = strings.TrimSpace(in.A)
		if strings.EqualFold(operation, FractionToDecimal) && in.Places != 0 {
			displayPlaces = in.Places
		}
	case strings.ToLower(FractionCombine):
		result, expression, err = combine(in)
	case strings.ToLower(FractionFromDecimal):
		places := in.Places
		if places == 0 {
			places = opts.FractionDecimalPlaces
		}
		result, err = fraction.FromDecimal(in.Value, places)
		expression = strconv.FormatFloat(in.Value, 'f', -1, 64)
	default:
		err = calcerr.Newf(calcerr.InvalidInput, []string{"operation"}, "unknown fraction operation %q", in.Operation)
	}
	if err != nil {
		return nil, nil, err
	}

	mixed, err := fraction.ToMixed(result)
	if err != nil {
		return nil, nil, err
	}
	value, text, err := fraction.ToDecimal(result, displayPlaces)
	if err != nil {
		return nil, nil, err
	}

	out := FractionOutput{
		Operation:   operation,
		Expression:  expression,
		Result:      result,
		Mixed:       mixed,
		Decimal:     value,
		DecimalText: text,
	}
	return out, []Line{
		{"Expression", expression},
		{"Fraction", result.String()},
		{"Mixed number", mixed.String()},
		{"Decimal", text},
	}, nil
}

func combine(in FractionInputs) (fraction.Fraction, string, error) {
	a, err := parseOperand(in.A, "a")
	if err != nil {
		return fraction.Fraction{}, "", err
	}
	b, err := parseOperand(in.B, "b")
	if err != nil {
		return fraction.Fraction{}, "", err
	}
	op, err := fraction.ParseOp(in.Op)
	if err != nil {
		return fraction.Fraction{}, "", err
	}
	result, err := fraction.Combine(a, b, op)
	if err != nil {
		return fraction.Fraction{}, "", err
	}
	return result, fmt.Sprintf("%s %s %s", strings.TrimSpace(in.A), op.Symbol(), strings.TrimSpace(in.B)), nil
}

// parseOperand parses fraction text and attributes failures to field.
func parseOperand(text, field string) (fraction.Fraction, error) {
	if strings.TrimSpace(text) == "" {
		return fraction.Fraction{}, calcerr.Invalid(field, field+" is required")
	}
	f, err := fraction.Parse(text)
	if err != nil {
		if kind := calcerr.KindOf(err); kind != "" {
			return fraction.Fraction{}, calcerr.New(kind, fmt.Sprintf("%s: cannot use %q", field, text), field)
		}
		return fraction.Fraction{}, err
	}
	return f, nil
}
