// Package loans provides the annuity formulas, parameter resolution and
// amortization schedule generation for a fixed-payment loan.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/mathutil"
)

// PeriodicRateFromAnnual converts an annual rate in percent into the monthly
// rate as a fraction, e.g. 6.0 -> 0.005.
func PeriodicRateFromAnnual(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// AnnualRateFromPeriodic converts a monthly fractional rate into an annual
// rate in percent.
func AnnualRateFromPeriodic(periodicRate float64) float64 {
	return periodicRate * constants.PercentageMultiplier * constants.MonthsPerYear
}

// discountedRemainder returns 1 - (1+i)^-n.
func discountedRemainder(periodicRate float64, termMonths int) float64 {
	return -math.Expm1(-float64(termMonths) * math.Log1p(periodicRate))
}

// CalculatePrincipal finds the principal given the periodic rate, monthly
// payment and term.
func CalculatePrincipal(periodicRate, monthlyPayment float64, termMonths int) (float64, error) {
	if periodicRate <= 0 {
		return 0, fmt.Errorf("principal from rate %g: %w", periodicRate, ErrDegenerateRate)
	}
	return monthlyPayment / periodicRate * discountedRemainder(periodicRate, termMonths), nil
}

// CalculateMonthlyPayment finds the monthly payment given the principal,
// periodic rate and term.
func CalculateMonthlyPayment(principal, periodicRate float64, termMonths int) (float64, error) {
	if periodicRate <= 0 {
		return 0, fmt.Errorf("monthly payment from rate %g: %w", periodicRate, ErrDegenerateRate)
	}
	if termMonths < 1 {
		return 0, fmt.Errorf("monthly payment over %d months: %w", termMonths, ErrInconsistent)
	}
	return principal * periodicRate / discountedRemainder(periodicRate, termMonths), nil
}

// CalculateTermMonths finds the number of payments, rounded to the nearest
// whole month, given the principal, periodic rate and monthly payment.
func CalculateTermMonths(principal, periodicRate, monthlyPayment float64) (int, error) {
	if periodicRate <= 0 {
		return 0, fmt.Errorf("term from rate %g: %w", periodicRate, ErrDegenerateRate)
	}
	if monthlyPayment <= 0 {
		return 0, fmt.Errorf("term from payment %g: %w", monthlyPayment, ErrNonAmortizing)
	}

	// (p - m/i) / (-m/i) reduces to 1 - p*i/m.
	ratio := 1 - principal*periodicRate/monthlyPayment
	if ratio <= 0 {
		return 0, fmt.Errorf("payment %.2f against interest %.2f: %w",
			monthlyPayment, principal*periodicRate, ErrNonAmortizing)
	}

	term := -math.Log(ratio) / math.Log1p(periodicRate)
	if !mathutil.IsFinite(term) {
		return 0, fmt.Errorf("term evaluated to %v: %w", term, ErrNonAmortizing)
	}
	return int(math.Round(term)), nil
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(balance, periodicRate float64) float64 {
	return balance * periodicRate
}

// CalculatePeriodicRate solves for the periodic rate given the principal,
// monthly payment and term using Newton's method on the principal formula.
// It returns the rate and the number of iterations taken.
func CalculatePeriodicRate(principal, monthlyPayment float64, termMonths int) (float64, int, error) {
	if principal <= 0 || termMonths < 1 {
		return 0, 0, fmt.Errorf("rate for principal %g over %d months: %w", principal, termMonths, ErrInconsistent)
	}
	if monthlyPayment*float64(termMonths) <= principal {
		return 0, 0, fmt.Errorf("payments total %.2f against principal %.2f: %w",
			monthlyPayment*float64(termMonths), principal, ErrDegenerateRate)
	}

	guess := constants.InitialRateGuess
	for iter := 1; iter <= constants.MaxRateIterations; iter++ {
		value, slope := principalAndSlope(guess, monthlyPayment, termMonths)
		f := value - principal

		if math.Abs(f) <= constants.PrincipalTolerance {
			return guess, iter, nil
		}
		if slope == 0 || !mathutil.IsFinite(slope) || !mathutil.IsFinite(f) {
			return guess, iter, fmt.Errorf("derivative vanished at rate %g after %d iterations: %w",
				guess, iter, ErrNoConvergence)
		}

		next := guess - f/slope
		if !(next > 0) || !mathutil.IsFinite(next) {
			// Stay on the positive axis.
			next = guess / 2
		}
		guess = next
	}

	return guess, constants.MaxRateIterations, fmt.Errorf("no convergence after %d iterations: %w",
		constants.MaxRateIterations, ErrNoConvergence)
}

// principalAndSlope returns the principal repaid by monthlyPayment over
// termMonths at rate i, and its derivative with respect to i.
//
//	P(i)  = m/i * (1 - (1+i)^-n)
//	P'(i) = m * (n*(1+i)^(-n-1)/i - (1 - (1+i)^-n)/i^2)
func principalAndSlope(i, monthlyPayment float64, termMonths int) (float64, float64) {
	n := float64(termMonths)
	remainder := discountedRemainder(i, termMonths)
	value := monthlyPayment / i * remainder
	slope := monthlyPayment * (n*math.Exp(-(n+1)*math.Log1p(i))/i - remainder/(i*i))
	return value, slope
}
