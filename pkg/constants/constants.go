// Package constants provides shared constants for the calc-engine application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CurrencyPlaces is the number of decimal places kept for currency values
	CurrencyPlaces = 2
)

// Fraction constants
const (
	// DefaultFractionDecimalPlaces is the default precision used when converting
	// a decimal into a fraction.
	DefaultFractionDecimalPlaces = 6

	// MaxFractionDecimalPlaces keeps 10^places within int64 range for any
	// value a caller is likely to convert.
	MaxFractionDecimalPlaces = 9

	// DefaultDecimalPlaces is the default display precision for fraction to
	// decimal conversions.
	DefaultDecimalPlaces = 6

	// MaxDecimalPlaces is the most digits a float64 can display meaningfully
	MaxDecimalPlaces = 15
)

// Pet food constants
const (
	// DefaultMealsPerDay is used for adult animals when no meal count is given
	DefaultMealsPerDay = 2

	// DefaultYoungMealsPerDay is used for puppies and kittens
	DefaultYoungMealsPerDay = 3

	// MaxMealsPerDay bounds the meal count a caller may request
	MaxMealsPerDay = 12
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON emits the raw result records
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of the batch config
	EnvPrefix = "CALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// MaxRequestSizeLimitBytes caps the configurable request body size (16 MB)
	MaxRequestSizeLimitBytes int64 = 16 * 1024 * 1024
)

// Validation constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
