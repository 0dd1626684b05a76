// Package calculator reads loan inputs from a property source, derives the
// missing value, checks consistency and produces the amortization report.
package calculator

import (
	"errors"
	"fmt"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/datetime"
	"github.com/iwvelando/amortize/pkg/loans"
	"github.com/iwvelando/amortize/pkg/mathutil"
	"go.uber.org/zap"
)

// ErrBadValue is returned when a supplied property cannot be parsed.
var ErrBadValue = errors.New("bad property value")

// PropertySource supplies raw and typed property values by key.
type PropertySource interface {
	Get(key, def string) string
	Float64(key string) (float64, bool, error)
	Int(key string) (int, bool, error)
}

// Calculator computes the report for one loan.
type Calculator struct {
	logger       *zap.Logger
	params       loans.Parameters
	showSchedule bool
	keepRows     bool
	firstPayment string
}

// New reads every input from props once. Nothing is read after construction.
func New(logger *zap.Logger, props PropertySource) (*Calculator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Calculator{logger: logger}

	var err error
	if c.params.Principal, err = optionalFloat(props, constants.KeyPrincipal); err != nil {
		return nil, err
	}
	if c.params.AnnualRate, err = optionalFloat(props, constants.KeyAnnualRate); err != nil {
		return nil, err
	}
	if c.params.TermMonths, err = optionalInt(props, constants.KeyTermMonths); err != nil {
		return nil, err
	}
	if c.params.MonthlyPayment, err = optionalFloat(props, constants.KeyMonthlyPayment); err != nil {
		return nil, err
	}

	extra, err := optionalFloat(props, constants.KeyExtraPayment)
	if err != nil {
		return nil, err
	}
	start, err := optionalInt(props, constants.KeyExtraStart)
	if err != nil {
		return nil, err
	}
	end, err := optionalInt(props, constants.KeyExtraEnd)
	if err != nil {
		return nil, err
	}
	c.params.Extra = loans.ExtraPayment{
		Amount:     extra.OrElse(0),
		StartMonth: start.OrElse(1),
		EndMonth:   end,
	}

	c.showSchedule = props.Get(constants.KeyVerbose, "false") != "false"

	c.firstPayment = props.Get(constants.KeyFirstPayment, "")
	if c.firstPayment != "" {
		if err := datetime.ValidateDate(c.firstPayment); err != nil {
			return nil, fmt.Errorf("property %s: %v: %w", constants.KeyFirstPayment, err, ErrBadValue)
		}
	}

	logger.Debug("loan parameters",
		zap.String("op", "calculator.New"),
		zap.Stringer("p", c.params.Principal),
		zap.Stringer("r", c.params.AnnualRate),
		zap.Stringer("n", c.params.TermMonths),
		zap.Stringer("m", c.params.MonthlyPayment),
		zap.Float64("x", c.params.Extra.Amount),
		zap.Int("s", c.params.Extra.StartMonth),
		zap.Stringer("e", c.params.Extra.EndMonth),
		zap.Bool("v", c.showSchedule),
	)

	return c, nil
}

// Parameters returns the loan parameters as read from the property source.
func (c *Calculator) Parameters() loans.Parameters {
	return c.params
}

// KeepSchedule makes Run keep every schedule row even when the schedule is
// not shown, for outputs that always list the rows.
func (c *Calculator) KeepSchedule(keep bool) {
	c.keepRows = keep
}

// Run derives the missing value, checks consistency and walks the full
// amortization schedule. Rows are only kept in the report when the schedule
// is shown or KeepSchedule was set; otherwise the schedule is walked for its
// totals alone. Either a complete report or an error is returned.
func (c *Calculator) Run() (*Report, error) {
	resolver := loans.NewResolver(c.logger)

	loan, err := resolver.Resolve(c.params)
	if err != nil {
		return nil, err
	}
	if err := resolver.CheckConsistency(&loan); err != nil {
		return nil, err
	}

	report := &Report{
		Principal:      loan.Principal,
		TermMonths:     loan.TermMonths,
		AnnualRate:     loan.AnnualRate,
		PeriodicRate:   loan.PeriodicRate,
		MonthlyPayment: loan.MonthlyPayment,
		FirstPayment:   c.firstPayment,
		ShowSchedule:   c.showSchedule,
	}
	if loan.HasExtraPayment() {
		report.ExtraPayment = loan.ExtraPayment
		report.ExtraStartMonth = loan.ExtraStartMonth
		report.ExtraEndMonth = loan.ExtraEndMonth
	}

	keepRows := c.showSchedule || c.keepRows
	schedule := loans.NewSchedule(c.logger, loan)
	for payment := range schedule.All() {
		if !keepRows {
			continue
		}
		row := Row{
			Month:     payment.Month,
			Interest:  payment.Interest,
			Principal: payment.Principal,
			Extra:     payment.Extra,
			Balance:   payment.Balance,
		}
		if row.Date, err = c.paymentDate(payment.Month); err != nil {
			return nil, err
		}
		report.Schedule = append(report.Schedule, row)
	}

	totals := schedule.Totals()
	report.Summary = Summary{
		PayoffMonth:         totals.PayoffMonth,
		TotalPayments:       totals.Paid + totals.Extra,
		TotalExtra:          totals.Extra,
		TotalInterest:       totals.Interest,
		InterestToPrincipal: mathutil.CalculatePercentage(totals.Interest, loan.Principal),
	}
	if totals.Extra > 0 {
		report.Summary.MonthsSaved = loan.TermMonths - totals.PayoffMonth
		report.Summary.TotalSavings = float64(loan.TermMonths)*loan.MonthlyPayment - totals.Paid - totals.Extra
	}
	if report.Summary.PayoffDate, err = c.paymentDate(totals.PayoffMonth); err != nil {
		return nil, err
	}

	c.logger.Debug(fmt.Sprintf("loan retired after %d of %d months", totals.PayoffMonth, loan.TermMonths),
		zap.String("op", "calculator.Run"),
		zap.Float64("interest", totals.Interest),
		zap.Float64("extra", totals.Extra),
	)

	return report, nil
}

func (c *Calculator) paymentDate(month int) (string, error) {
	if c.firstPayment == "" || month < 1 {
		return "", nil
	}
	return datetime.PaymentDate(c.firstPayment, month)
}

func optionalFloat(props PropertySource, key string) (loans.Optional[float64], error) {
	value, ok, err := props.Float64(key)
	if err != nil {
		return loans.None[float64](), fmt.Errorf("%v: %w", err, ErrBadValue)
	}
	if !ok {
		return loans.None[float64](), nil
	}
	return loans.Some(value), nil
}

func optionalInt(props PropertySource, key string) (loans.Optional[int], error) {
	value, ok, err := props.Int(key)
	if err != nil {
		return loans.None[int](), fmt.Errorf("%v: %w", err, ErrBadValue)
	}
	if !ok {
		return loans.None[int](), nil
	}
	return loans.Some(value), nil
}
