package loans

import (
	"iter"

	"github.com/iwvelando/amortize/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given payment.
type Payment struct {
	Month     int
	Interest  float64
	Principal float64 // includes Extra
	Extra     float64
	Balance   float64
}

// Totals accumulates over the payments generated so far.
type Totals struct {
	Interest    float64
	Principal   float64
	Paid        float64 // scheduled payments, excluding extra payments
	Extra       float64
	PayoffMonth int
}

// Schedule generates the amortization schedule of a loan one month at a
// time. It is finite and cannot be restarted.
type Schedule struct {
	logger  *zap.Logger
	loan    Loan
	month   int
	balance float64
	done    bool
	totals  Totals
}

// NewSchedule creates a schedule for a resolved and checked loan.
func NewSchedule(logger *zap.Logger, loan Loan) *Schedule {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Schedule{logger: logger, loan: loan, balance: loan.Principal}
}

// Next returns the next month's payment, or false once the term has elapsed
// or the balance has been retired.
//
// Unlike the plain algorithm, which subtracts the full extra payment and can
// leave a negative final row, the extra payment is capped to the balance left
// after the scheduled payment. The loan is then retired in the month the
// balance reaches zero, and total extra counts only what was actually paid.
func (s *Schedule) Next() (Payment, bool) {
	if s.done || s.month >= s.loan.TermMonths {
		s.done = true
		return Payment{}, false
	}
	s.month++

	payment := Payment{Month: s.month}
	payment.Interest = CalculateInterestPayment(s.balance, s.loan.PeriodicRate)
	payment.Principal = s.loan.MonthlyPayment - payment.Interest
	s.balance -= payment.Principal
	s.totals.Interest += payment.Interest

	if s.balance < 0 {
		// The final payment only covers what is left.
		payment.Principal += s.balance
		s.totals.Paid += s.loan.MonthlyPayment + s.balance
		s.totals.Principal += payment.Principal
		s.balance = 0
		s.finish()
		return payment, true
	}

	s.totals.Paid += s.loan.MonthlyPayment

	if s.loan.ExtraApplies(s.month) {
		extra := mathutil.Min(s.loan.ExtraPayment, s.balance)
		if extra < s.loan.ExtraPayment {
			s.logger.Debug("capping extra payment to the remaining balance",
				zap.String("op", "loans.Schedule.Next"),
				zap.Int("month", s.month),
				zap.Float64("requested", s.loan.ExtraPayment),
				zap.Float64("capped_to_balance", extra),
			)
		}
		s.balance -= extra
		payment.Extra = extra
		payment.Principal += extra
		s.totals.Extra += extra
	}

	if s.month == s.loan.TermMonths && s.balance > 0 && mathutil.IsZero(s.balance) {
		// Machine error; settle it with the last payment.
		payment.Principal += s.balance
		s.totals.Paid += s.balance
		s.balance = 0
	}

	s.totals.Principal += payment.Principal
	payment.Balance = s.balance
	if s.balance == 0 || s.month == s.loan.TermMonths {
		s.finish()
	}
	return payment, true
}

func (s *Schedule) finish() {
	s.done = true
	s.totals.PayoffMonth = s.month
}

// All returns an iterator over the remaining payments.
func (s *Schedule) All() iter.Seq[Payment] {
	return func(yield func(Payment) bool) {
		for {
			payment, ok := s.Next()
			if !ok || !yield(payment) {
				return
			}
		}
	}
}

// Totals returns the running totals.
func (s *Schedule) Totals() Totals {
	return s.totals
}

// Balance returns the outstanding balance.
func (s *Schedule) Balance() float64 {
	return s.balance
}

// Done reports whether the schedule is exhausted.
func (s *Schedule) Done() bool {
	return s.done
}
