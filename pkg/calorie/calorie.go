// Package calorie estimates basal metabolic rate, daily calorie needs and a
// macronutrient split using the Mifflin-St Jeor equation.
package calorie

import (
	"strings"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/mathutil"
	"github.com/iwvelando/calc-engine/pkg/units"
	"github.com/iwvelando/calc-engine/pkg/validation"
)

// ActivityMultipliers scales BMR to total daily energy expenditure.
var ActivityMultipliers = map[string]float64{
	"sedentary":  1.2,
	"light":      1.375,
	"moderate":   1.55,
	"active":     1.725,
	"veryactive": 1.9,
}

// GoalAdjustments is the daily calorie change applied for each goal.
var GoalAdjustments = map[string]float64{
	"maintain": 0,
	"lose":     -500,
	"gain":     500,
}

// Macronutrient share of daily calories and energy per gram.
const (
	ProteinShare = 0.30
	CarbsShare   = 0.40
	FatsShare    = 0.30

	KcalPerGramProtein = 4.0
	KcalPerGramCarbs   = 4.0
	KcalPerGramFat     = 9.0
)

// Energy stored per unit of body weight, used for the weekly goal.
const (
	KcalPerKilogram = 7700.0
	KcalPerPound    = 3500.0
)

const (
	defaultActivity = "moderate"
	defaultGoal     = "maintain"
)

// Inputs holds a person's measurements and goal. Metric is kilograms and
// centimetres, imperial is pounds and inches; Age is in years.
type Inputs struct {
	Age           int     `json:"age" yaml:"age" mapstructure:"age" validate:"gte=1,lte=120"`
	Gender        string  `json:"gender" yaml:"gender" mapstructure:"gender" validate:"oneof=male female"`
	Weight        float64 `json:"weight" yaml:"weight" mapstructure:"weight" validate:"finite,gt=0"`
	Height        float64 `json:"height" yaml:"height" mapstructure:"height" validate:"finite,gt=0"`
	Unit          string  `json:"unit,omitempty" yaml:"unit,omitempty" mapstructure:"unit"`
	ActivityLevel string  `json:"activityLevel,omitempty" yaml:"activityLevel,omitempty" mapstructure:"activityLevel" validate:"oneof=sedentary light moderate active veryactive"`
	Goal          string  `json:"goal,omitempty" yaml:"goal,omitempty" mapstructure:"goal" validate:"oneof=maintain lose gain"`
}

// Macronutrients holds grams per day.
type Macronutrients struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

// Results holds the energy estimates. Calories are whole kcal per day and
// WeeklyGoal is the expected weekly weight change in the input weight unit.
type Results struct {
	BMR            float64        `json:"bmr"`
	DailyCalories  float64        `json:"dailyCalories"`
	Macronutrients Macronutrients `json:"macronutrients"`
	WeeklyGoal     float64        `json:"weeklyGoal"`
	Unit           units.System   `json:"unit"`
}

// normalizeKey lowercases a lookup key and drops separators so that
// "veryActive", "very_active" and "Very Active" all match.
func normalizeKey(s string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

func normalizeGender(s string) string {
	switch key := normalizeKey(s); key {
	case "m", "man":
		return "male"
	case "f", "woman":
		return "female"
	default:
		return key
	}
}

// BMR returns the Mifflin-St Jeor basal metabolic rate for kilograms,
// centimetres and years.
func BMR(kg, cm float64, age int, gender string) float64 {
	base := 10*kg + 6.25*cm - 5*float64(age)
	if gender == "female" {
		return base - 161
	}
	return base + 5
}

// Calculate estimates daily energy needs.
func Calculate(in Inputs) (Results, error) {
	system, err := units.ParseSystem(in.Unit)
	if err != nil {
		return Results{}, calcerr.Invalid("unit", err.Error())
	}

	in.Gender = normalizeGender(in.Gender)
	in.ActivityLevel = normalizeKey(in.ActivityLevel)
	if in.ActivityLevel == "" {
		in.ActivityLevel = defaultActivity
	}
	in.Goal = normalizeKey(in.Goal)
	if in.Goal == "" {
		in.Goal = defaultGoal
	}
	if err := validation.Struct(in); err != nil {
		return Results{}, err
	}

	bmr := BMR(system.WeightToKilograms(in.Weight), system.HeightToCentimeters(in.Height), in.Age, in.Gender)
	if !mathutil.IsFinite(bmr) || bmr <= 0 {
		return Results{}, calcerr.New(calcerr.UndefinedResult,
			"measurements give no usable basal metabolic rate", "weight", "height", "age")
	}

	adjustment := GoalAdjustments[in.Goal]
	daily := mathutil.RoundTo(bmr*ActivityMultipliers[in.ActivityLevel]+adjustment, 0)
	if daily <= 0 {
		return Results{}, calcerr.New(calcerr.UndefinedResult,
			"goal adjustment leaves no daily calories", "goal")
	}

	kcalPerUnit := KcalPerKilogram
	if system == units.Imperial {
		kcalPerUnit = KcalPerPound
	}

	return Results{
		BMR:           mathutil.RoundTo(bmr, 0),
		DailyCalories: daily,
		Macronutrients: Macronutrients{
			Protein: mathutil.RoundTo(daily*ProteinShare/KcalPerGramProtein, 0),
			Carbs:   mathutil.RoundTo(daily*CarbsShare/KcalPerGramCarbs, 0),
			Fats:    mathutil.RoundTo(daily*FatsShare/KcalPerGramFat, 0),
		},
		WeeklyGoal: mathutil.Round(adjustment * 7 / kcalPerUnit),
		Unit:       system,
	}, nil
}
