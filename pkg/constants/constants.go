// Package constants provides shared constants for the mortgage-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// DefaultMinInitialPaymentPercentage is the advisory down payment share
	// used when a configuration does not set one.
	DefaultMinInitialPaymentPercentage = 20.0

	// DefaultMinYears and DefaultMaxYears bound the term sweep when a
	// configuration leaves the range empty.
	DefaultMinYears = 1
	DefaultMaxYears = 30

	// MaxTermMonths bounds the number of periods a payment breakdown will
	// materialize (100 years)
	MaxTermMonths = 100 * MonthsPerYear
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum JSON request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024

	// DefaultMaxTermYears caps the sweep range accepted over HTTP
	DefaultMaxTermYears = 50
)

// Validation constants
const (
	// ToleranceForComparison is the tolerance for financial comparisons, one
	// currency unit
	ToleranceForComparison = 1.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// RelativeTolerance scales ToleranceForComparison for large amounts
	RelativeTolerance = 1e-9

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
