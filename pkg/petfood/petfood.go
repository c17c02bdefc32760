// Package petfood estimates daily energy needs and feeding portions for dogs
// and cats.
package petfood

import (
	"math"
	"strings"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/iwvelando/calc-engine/pkg/mathutil"
	"github.com/iwvelando/calc-engine/pkg/units"
	"github.com/iwvelando/calc-engine/pkg/validation"
)

// LifeStage groups animals by age.
type LifeStage string

const (
	Young  LifeStage = "young"
	Adult  LifeStage = "adult"
	Senior LifeStage = "senior"
)

// Age bounds in years. Young is below YoungBefore, senior is SeniorFrom and up.
const (
	YoungBefore = 1.0
	SeniorFrom  = 7.0
)

// RER holds the resting energy requirement coefficients for a species:
// coefficient * kg^exponent kcal per day.
type RER struct {
	Coefficient float64
	Exponent    float64
}

// RestingEnergy is keyed by pet type.
var RestingEnergy = map[string]RER{
	"dog": {Coefficient: 70, Exponent: 0.75},
	"cat": {Coefficient: 100, Exponent: 0.67},
}

// ActivityMultipliers scale RER for an adult animal, keyed by pet type then
// activity level.
var ActivityMultipliers = map[string]map[string]float64{
	"dog": {"low": 1.4, "moderate": 1.6, "high": 2.0},
	"cat": {"low": 1.0, "moderate": 1.2, "high": 1.4},
}

// LifeStageFactors adjust the activity multiplier for growing and ageing animals.
var LifeStageFactors = map[LifeStage]float64{
	Young:  1.5,
	Adult:  1.0,
	Senior: 0.8,
}

// EnergyDensity is kcal per gram of food, keyed by food type.
var EnergyDensity = map[string]float64{
	"dry": 3.5,
	"wet": 1.0,
}

const (
	defaultActivity = "moderate"
	defaultFoodType = "dry"
)

// Inputs describes the animal and its food. Weight is kilograms (metric) or
// pounds (imperial) and Age is in years. A zero MealsPerDay selects the
// default for the life stage.
type Inputs struct {
	PetType       string  `json:"petType" yaml:"petType" mapstructure:"petType" validate:"oneof=dog cat"`
	Weight        float64 `json:"weight" yaml:"weight" mapstructure:"weight" validate:"finite,gt=0"`
	Age           float64 `json:"age" yaml:"age" mapstructure:"age" validate:"finite,gte=0,lte=40"`
	ActivityLevel string  `json:"activityLevel,omitempty" yaml:"activityLevel,omitempty" mapstructure:"activityLevel" validate:"oneof=low moderate high"`
	Unit          string  `json:"unit,omitempty" yaml:"unit,omitempty" mapstructure:"unit"`
	FoodType      string  `json:"foodType,omitempty" yaml:"foodType,omitempty" mapstructure:"foodType" validate:"oneof=dry wet"`
	MealsPerDay   int     `json:"mealsPerDay,omitempty" yaml:"mealsPerDay,omitempty" mapstructure:"mealsPerDay" validate:"gte=0,lte=12"`
}

// Results holds calories in whole kcal per day and food amounts in
// AmountUnit (grams or ounces).
type Results struct {
	RestingCalories float64   `json:"restingCalories"`
	DailyCalories   float64   `json:"dailyCalories"`
	FoodAmount      float64   `json:"foodAmount"`
	MealsPerDay     int       `json:"mealsPerDay"`
	AmountPerMeal   float64   `json:"amountPerMeal"`
	AmountUnit      string    `json:"amountUnit"`
	LifeStage       LifeStage `json:"lifeStage"`
}

// StageForAge returns the life stage for an age in years.
func StageForAge(age float64) LifeStage {
	switch {
	case age < YoungBefore:
		return Young
	case age >= SeniorFrom:
		return Senior
	default:
		return Adult
	}
}

// DefaultMeals returns the meal count used when none is given.
func DefaultMeals(stage LifeStage) int {
	if stage == Young {
		return constants.DefaultYoungMealsPerDay
	}
	return constants.DefaultMealsPerDay
}

func normalize(s string, fallback string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	return s
}

// Calculate estimates the daily food requirement.
func Calculate(in Inputs) (Results, error) {
	system, err := units.ParseSystem(in.Unit)
	if err != nil {
		return Results{}, calcerr.Invalid("unit", err.Error())
	}

	in.PetType = normalize(in.PetType, "")
	in.ActivityLevel = normalize(in.ActivityLevel, defaultActivity)
	in.FoodType = normalize(in.FoodType, defaultFoodType)
	if err := validation.Struct(in); err != nil {
		return Results{}, err
	}

	stage := StageForAge(in.Age)
	meals := in.MealsPerDay
	if meals == 0 {
		meals = DefaultMeals(stage)
	}

	coeff := RestingEnergy[in.PetType]
	resting := coeff.Coefficient * math.Pow(system.WeightToKilograms(in.Weight), coeff.Exponent)
	multiplier := ActivityMultipliers[in.PetType][in.ActivityLevel] * LifeStageFactors[stage]
	daily := mathutil.RoundTo(resting*multiplier, 0)

	grams := daily / EnergyDensity[in.FoodType]
	amount := system.PortionFromGrams(grams)

	return Results{
		RestingCalories: mathutil.RoundTo(resting, 0),
		DailyCalories:   daily,
		FoodAmount:      mathutil.Round(amount),
		MealsPerDay:     meals,
		AmountPerMeal:   mathutil.Round(amount / float64(meals)),
		AmountUnit:      system.PortionUnit(),
		LifeStage:       stage,
	}, nil
}
