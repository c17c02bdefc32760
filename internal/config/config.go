// Package config defines the batch configuration read by the calc-engine CLI
// and the functions for loading and checking it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a calc-engine batch run.
type Configuration struct {
	Logging      LoggingConfig   `yaml:"logging,omitempty" mapstructure:"logging"`
	Output       OutputConfig    `yaml:"output,omitempty" mapstructure:"output"`
	Precision    PrecisionConfig `yaml:"precision,omitempty" mapstructure:"precision"`
	PetFood      PetFoodConfig   `yaml:"petFood,omitempty" mapstructure:"petFood"`
	Calculations []Calculation   `yaml:"calculations" mapstructure:"calculations"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format       string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
	ShowSchedule bool   `yaml:"showSchedule,omitempty" mapstructure:"showSchedule"`
}

// PrecisionConfig holds the fraction conversion precisions. Zero selects the default.
type PrecisionConfig struct {
	FractionDecimalPlaces int `yaml:"fractionDecimalPlaces,omitempty" mapstructure:"fractionDecimalPlaces"`
	DecimalPlaces         int `yaml:"decimalPlaces,omitempty" mapstructure:"decimalPlaces"`
}

// PetFoodConfig holds pet food defaults.
type PetFoodConfig struct {
	DefaultMealsPerDay int `yaml:"defaultMealsPerDay,omitempty" mapstructure:"defaultMealsPerDay"`
}

// Calculation is one named calculation with its raw inputs.
type Calculation struct {
	Name   string                 `yaml:"name" mapstructure:"name"`
	Type   string                 `yaml:"type" mapstructure:"type"`
	Inputs map[string]interface{} `yaml:"inputs" mapstructure:"inputs"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Scalar settings may be overridden by CALC_* environment
// variables, e.g. CALC_OUTPUT_FORMAT.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML (or JSON) configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	// Bind the scalar keys so environment overrides apply even when the file
	// omits them.
	for _, key := range []string{
		"logging.level", "logging.format", "logging.outputFile",
		"output.format", "output.showSchedule",
		"precision.fractionDecimalPlaces", "precision.decimalPlaces",
		"petFood.defaultMealsPerDay",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("unable to bind environment for %s, %w", key, err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	for i := range configuration.Calculations {
		calc := &configuration.Calculations[i]
		calc.Name = strings.TrimSpace(calc.Name)
		calc.Type = strings.TrimSpace(calc.Type)
		if calc.Name == "" {
			calc.Name = fmt.Sprintf("calculation %d", i+1)
		}
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. isKnownType, when non-nil, reports whether a calculation
// type is supported.
func (c *Configuration) ValidateConfiguration(isKnownType func(string) bool) []string {
	var warnings []string

	if len(c.Calculations) == 0 {
		warnings = append(warnings, "no calculations are configured")
	}

	seen := make(map[string]int, len(c.Calculations))
	for i, calc := range c.Calculations {
		if first, ok := seen[calc.Name]; ok {
			warnings = append(warnings, fmt.Sprintf("calculation %d reuses the name %q of calculation %d", i+1, calc.Name, first+1))
		} else {
			seen[calc.Name] = i
		}

		switch {
		case calc.Type == "":
			warnings = append(warnings, fmt.Sprintf("calculation %q has no type", calc.Name))
		case isKnownType != nil && !isKnownType(calc.Type):
			warnings = append(warnings, fmt.Sprintf("calculation %q has unknown type %q", calc.Name, calc.Type))
		}

		if len(calc.Inputs) == 0 {
			warnings = append(warnings, fmt.Sprintf("calculation %q has no inputs", calc.Name))
		}
	}

	if p := c.Precision.FractionDecimalPlaces; p < 0 || p > constants.MaxFractionDecimalPlaces {
		warnings = append(warnings, fmt.Sprintf("precision.fractionDecimalPlaces %d is outside 1-%d", p, constants.MaxFractionDecimalPlaces))
	}
	if p := c.Precision.DecimalPlaces; p < 0 || p > constants.MaxDecimalPlaces {
		warnings = append(warnings, fmt.Sprintf("precision.decimalPlaces %d is outside 1-%d", p, constants.MaxDecimalPlaces))
	}
	if m := c.PetFood.DefaultMealsPerDay; m < 0 || m > constants.MaxMealsPerDay {
		warnings = append(warnings, fmt.Sprintf("petFood.defaultMealsPerDay %d is outside 1-%d", m, constants.MaxMealsPerDay))
	}

	return warnings
}
