// Package constants provides shared constants for the amortize application.
package constants

// DateTimeLayout is the format of the optional first payment month and of
// the dates printed in amortization schedules.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ConsistencyTolerance is the largest difference allowed between a
	// recorded and a recomputed monthly payment.
	ConsistencyTolerance = 0.001

	// PrincipalTolerance is the convergence target of the rate solver,
	// measured on the recomputed principal.
	PrincipalTolerance = 0.001
)

// Rate solver constants
const (
	// InitialRateGuess is the periodic rate the Newton solver starts from.
	InitialRateGuess = 0.10

	// MaxRateIterations bounds the Newton solver.
	MaxRateIterations = 1000
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable report
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV schedule output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON report output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML report output format
	OutputFormatYAML = "yaml"
)

// Configuration constants
const (
	// DefaultConfigFile is the default settings file name
	DefaultConfigFile = "amortize.yaml"

	// EnvPrefix prefixes environment variables that supply loan properties,
	// e.g. AMORTIZE_P=200000.
	EnvPrefix = "AMORTIZE"

	// DefaultLogLevel keeps a clean run free of log lines on stderr.
	DefaultLogLevel = "warn"

	// DefaultLogFormat is the zap encoder used when none is configured.
	DefaultLogFormat = "json"
)

// Property keys read by the loan calculator.
const (
	KeyPrincipal      = "p"
	KeyAnnualRate     = "r"
	KeyTermMonths     = "n"
	KeyMonthlyPayment = "m"
	KeyVerbose        = "v"
	KeyExtraPayment   = "x"
	KeyExtraStart     = "s"
	KeyExtraEnd       = "e"
	KeyFirstPayment   = "d"
)

// BadInformationMessage is the single diagnostic line printed on failure.
const BadInformationMessage = "Bad or missing information."
