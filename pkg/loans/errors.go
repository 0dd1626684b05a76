package loans

import "errors"

var (
	// ErrInsufficientInput is returned when fewer than three of principal,
	// rate, term and monthly payment are known.
	ErrInsufficientInput = errors.New("at least three of principal, rate, term and monthly payment are required")

	// ErrInconsistent is returned when the resolved values do not reproduce
	// the monthly payment on record, or are out of range.
	ErrInconsistent = errors.New("loan parameters are inconsistent")

	// ErrDegenerateRate is returned when a formula would divide by a zero or
	// negative periodic rate.
	ErrDegenerateRate = errors.New("periodic rate must be positive")

	// ErrNonAmortizing is returned when the monthly payment never retires
	// the principal.
	ErrNonAmortizing = errors.New("monthly payment does not cover the interest")

	// ErrNoConvergence is returned when the rate solver fails to converge.
	ErrNoConvergence = errors.New("periodic rate solver did not converge")
)
