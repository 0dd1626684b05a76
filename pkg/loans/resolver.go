package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/mathutil"
	"go.uber.org/zap"
)

// ExtraPayment is a voluntary principal-only payment applied every month of
// an inclusive window.
type ExtraPayment struct {
	Amount     float64
	StartMonth int
	EndMonth   Optional[int]
}

// Parameters holds the loan values as supplied. Any one of the four core
// values may be missing; the Resolver derives it from the other three.
type Parameters struct {
	Principal      Optional[float64]
	AnnualRate     Optional[float64] // percent
	PeriodicRate   Optional[float64] // fraction per month
	TermMonths     Optional[int]
	MonthlyPayment Optional[float64]
	Extra          ExtraPayment
}

// Known returns how many of principal, rate, term and monthly payment are
// present. A supplied annual rate counts as a known rate.
func (p Parameters) Known() int {
	known := 0
	for _, set := range []bool{
		p.Principal.IsSet(),
		p.PeriodicRate.IsSet() || p.AnnualRate.IsSet(),
		p.TermMonths.IsSet(),
		p.MonthlyPayment.IsSet(),
	} {
		if set {
			known++
		}
	}
	return known
}

// Loan is a fully resolved loan.
type Loan struct {
	Principal       float64
	AnnualRate      float64 // percent
	PeriodicRate    float64
	TermMonths      int
	MonthlyPayment  float64
	ExtraPayment    float64
	ExtraStartMonth int
	ExtraEndMonth   int

	// RateIterations is the number of solver iterations when the rate was
	// derived, 0 otherwise.
	RateIterations int

	extra ExtraPayment
}

// HasExtraPayment reports whether an extra payment applies in any month.
func (l Loan) HasExtraPayment() bool {
	return l.ExtraPayment > 0 && l.ExtraStartMonth >= 1 && l.ExtraEndMonth >= l.ExtraStartMonth
}

// ExtraApplies reports whether the extra payment applies in the given month.
func (l Loan) ExtraApplies(month int) bool {
	return l.HasExtraPayment() && month >= l.ExtraStartMonth && month <= l.ExtraEndMonth
}

// Resolver derives missing loan values and checks them for consistency.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a new resolver instance
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger}
}

// Resolve computes the missing core value in dependency order (principal,
// periodic rate, term, monthly payment) until all four are known. An annual
// rate, when supplied, always defines the periodic rate; the rate solver only
// runs when no rate was supplied at all.
func (r *Resolver) Resolve(params Parameters) (Loan, error) {
	if params.Known() < 3 {
		return Loan{}, fmt.Errorf("%d of 4 values supplied: %w", params.Known(), ErrInsufficientInput)
	}

	principal := params.Principal
	rate := params.PeriodicRate
	term := params.TermMonths
	payment := params.MonthlyPayment

	if annual, ok := params.AnnualRate.Get(); ok {
		rate = Some(PeriodicRateFromAnnual(annual))
	}

	var iterations int
	for progress := true; progress; {
		progress = false

		p, havePrincipal := principal.Get()
		i, haveRate := rate.Get()
		n, haveTerm := term.Get()
		m, havePayment := payment.Get()

		if !havePrincipal && haveRate && havePayment && haveTerm {
			v, err := CalculatePrincipal(i, m, n)
			if err != nil {
				return Loan{}, err
			}
			r.logger.Debug(fmt.Sprintf("derived principal %.2f", v),
				zap.String("op", "loans.Resolve"),
			)
			principal = Some(v)
			progress = true
			continue
		}
		if !haveRate && havePrincipal && havePayment && haveTerm {
			v, iter, err := CalculatePeriodicRate(p, m, n)
			if err != nil {
				return Loan{}, err
			}
			r.logger.Debug(fmt.Sprintf("derived periodic rate %.7f", v),
				zap.String("op", "loans.Resolve"),
				zap.Int("iterations", iter),
			)
			rate = Some(v)
			iterations = iter
			progress = true
			continue
		}
		if !haveTerm && havePrincipal && havePayment && haveRate {
			v, err := CalculateTermMonths(p, i, m)
			if err != nil {
				return Loan{}, err
			}
			r.logger.Debug(fmt.Sprintf("derived term of %d months", v),
				zap.String("op", "loans.Resolve"),
			)
			term = Some(v)
			progress = true
			continue
		}
		if !havePayment && havePrincipal && haveRate && haveTerm {
			v, err := CalculateMonthlyPayment(p, i, n)
			if err != nil {
				return Loan{}, err
			}
			r.logger.Debug(fmt.Sprintf("derived monthly payment %.2f", v),
				zap.String("op", "loans.Resolve"),
			)
			payment = Some(v)
			progress = true
		}
	}

	if !principal.IsSet() || !rate.IsSet() || !term.IsSet() || !payment.IsSet() {
		return Loan{}, ErrInsufficientInput
	}

	loan := Loan{
		Principal:      principal.OrElse(0),
		PeriodicRate:   rate.OrElse(0),
		TermMonths:     term.OrElse(0),
		MonthlyPayment: payment.OrElse(0),
		RateIterations: iterations,
		extra:          params.Extra,
	}
	loan.AnnualRate = params.AnnualRate.OrElse(AnnualRateFromPeriodic(loan.PeriodicRate))
	return loan, nil
}

// CheckConsistency recomputes the monthly payment from principal, rate and
// term and compares it with the payment on record. On success it finalizes
// the extra payment window.
func (r *Resolver) CheckConsistency(loan *Loan) error {
	if !(loan.Principal > 0) || !mathutil.IsFinite(loan.Principal) {
		return fmt.Errorf("principal %v: %w", loan.Principal, ErrInconsistent)
	}
	if loan.TermMonths < 1 {
		return fmt.Errorf("term of %d months: %w", loan.TermMonths, ErrInconsistent)
	}

	recomputed, err := CalculateMonthlyPayment(loan.Principal, loan.PeriodicRate, loan.TermMonths)
	if err != nil {
		return err
	}
	if !mathutil.WithinTolerance(recomputed, loan.MonthlyPayment, constants.ConsistencyTolerance) {
		return fmt.Errorf("monthly payment %.4f, expected %.4f: %w", loan.MonthlyPayment, recomputed, ErrInconsistent)
	}

	r.finalizeExtraPayment(loan)
	return nil
}

func (r *Resolver) finalizeExtraPayment(loan *Loan) {
	extra := loan.extra
	start := extra.StartMonth
	if start == 0 {
		start = 1
	}
	end := extra.EndMonth.OrElse(loan.TermMonths)

	loan.ExtraStartMonth = start
	loan.ExtraEndMonth = end
	loan.ExtraPayment = 0

	if extra.Amount == 0 {
		return
	}
	if extra.Amount < 0 || math.IsNaN(extra.Amount) || start < 1 || end < start {
		r.logger.Warn("ignoring extra payment with an empty or invalid window",
			zap.String("op", "loans.CheckConsistency"),
			zap.Float64("amount", extra.Amount),
			zap.Int("start", start),
			zap.Int("end", end),
		)
		return
	}
	loan.ExtraPayment = extra.Amount
}
