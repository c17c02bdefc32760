package calorie

import (
	"errors"
	"testing"

	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		input    Inputs
		expected Results
	}{
		{
			name:  "male moderate maintain",
			input: Inputs{Age: 30, Gender: "male", Weight: 80, Height: 180, ActivityLevel: "moderate", Goal: "maintain"},
			expected: Results{
				BMR:            1780,
				DailyCalories:  2759,
				Macronutrients: Macronutrients{Protein: 207, Carbs: 276, Fats: 92},
				WeeklyGoal:     0,
				Unit:           units.Metric,
			},
		},
		{
			name:  "female sedentary lose",
			input: Inputs{Age: 25, Gender: "Female", Weight: 60, Height: 165, ActivityLevel: "sedentary", Goal: "lose"},
			expected: Results{
				BMR:            1345,
				DailyCalories:  1114,
				Macronutrients: Macronutrients{Protein: 84, Carbs: 111, Fats: 37},
				WeeklyGoal:     -0.45,
				Unit:           units.Metric,
			},
		},
		{
			name:  "imperial active gain",
			input: Inputs{Age: 40, Gender: "m", Weight: 176, Height: 70, Unit: "imperial", ActivityLevel: "active", Goal: "gain"},
			expected: Results{
				BMR:            1715,
				DailyCalories:  3458,
				Macronutrients: Macronutrients{Protein: 259, Carbs: 346, Fats: 115},
				WeeklyGoal:     1,
				Unit:           units.Imperial,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Calculate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, results)
		})
	}
}

func TestCalculate_ActivityAliases(t *testing.T) {
	base := Inputs{Age: 30, Gender: "male", Weight: 80, Height: 180}

	for _, level := range []string{"veryActive", "very_active", "Very Active"} {
		in := base
		in.ActivityLevel = level
		results, err := Calculate(in)
		require.NoError(t, err, level)
		assert.Equal(t, 3382.0, results.DailyCalories, level)
	}

	// Empty activity and goal default to moderate maintenance.
	results, err := Calculate(base)
	require.NoError(t, err)
	assert.Equal(t, 2759.0, results.DailyCalories)
}

func TestCalculate_GoalOrdering(t *testing.T) {
	base := Inputs{Age: 35, Gender: "female", Weight: 70, Height: 170, ActivityLevel: "light"}
	daily := map[string]float64{}
	for _, goal := range []string{"lose", "maintain", "gain"} {
		in := base
		in.Goal = goal
		results, err := Calculate(in)
		require.NoError(t, err)
		daily[goal] = results.DailyCalories
	}
	assert.Equal(t, 500.0, daily["maintain"]-daily["lose"])
	assert.Equal(t, 500.0, daily["gain"]-daily["maintain"])
}

func TestCalculate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		input  Inputs
		kind   error
		fields []string
	}{
		{
			name:   "missing gender",
			input:  Inputs{Age: 30, Weight: 80, Height: 180},
			kind:   calcerr.ErrInvalidInput,
			fields: []string{"gender"},
		},
		{
			name:   "negative weight and zero age",
			input:  Inputs{Age: 0, Gender: "male", Weight: -80, Height: 180},
			kind:   calcerr.ErrInvalidInput,
			fields: []string{"age", "weight"},
		},
		{
			name:   "unknown activity",
			input:  Inputs{Age: 30, Gender: "male", Weight: 80, Height: 180, ActivityLevel: "extreme"},
			kind:   calcerr.ErrInvalidInput,
			fields: []string{"activityLevel"},
		},
		{
			name:   "unknown goal",
			input:  Inputs{Age: 30, Gender: "male", Weight: 80, Height: 180, Goal: "bulk"},
			kind:   calcerr.ErrInvalidInput,
			fields: []string{"goal"},
		},
		{
			name:   "unknown unit",
			input:  Inputs{Age: 30, Gender: "male", Weight: 80, Height: 180, Unit: "cubits"},
			kind:   calcerr.ErrInvalidInput,
			fields: []string{"unit"},
		},
		{
			name:   "non-positive bmr",
			input:  Inputs{Age: 120, Gender: "female", Weight: 1, Height: 1},
			kind:   calcerr.ErrUndefinedResult,
			fields: []string{"weight", "height", "age"},
		},
		{
			name:   "bmr overflows",
			input:  Inputs{Age: 30, Gender: "male", Weight: 1e308, Height: 180},
			kind:   calcerr.ErrUndefinedResult,
			fields: []string{"weight", "height", "age"},
		},
		{
			name:   "imperial height overflows",
			input:  Inputs{Age: 30, Gender: "female", Weight: 150, Height: 1e308, Unit: "imperial"},
			kind:   calcerr.ErrUndefinedResult,
			fields: []string{"weight", "height", "age"},
		},
		{
			name:   "deficit exceeds expenditure",
			input:  Inputs{Age: 80, Gender: "female", Weight: 30, Height: 100, ActivityLevel: "sedentary", Goal: "lose"},
			kind:   calcerr.ErrUndefinedResult,
			fields: []string{"goal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.Equal(t, tt.fields, calcerr.FieldsOf(err))
		})
	}
}
