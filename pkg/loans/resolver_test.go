package loans

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestResolveDerivesMissingValue(t *testing.T) {
	tests := []struct {
		name     string
		params   Parameters
		validate func(t *testing.T, loan Loan)
	}{
		{
			name: "Monthly payment from principal, rate and term",
			params: Parameters{
				Principal:  Some(200000.0),
				AnnualRate: Some(6.0),
				TermMonths: Some(360),
			},
			validate: func(t *testing.T, loan Loan) {
				if math.Abs(loan.PeriodicRate-0.005) > 1e-12 {
					t.Errorf("PeriodicRate = %v, expected 0.005", loan.PeriodicRate)
				}
				if math.Abs(loan.MonthlyPayment-1199.10) > 0.01 {
					t.Errorf("MonthlyPayment = %.4f, expected 1199.10", loan.MonthlyPayment)
				}
			},
		},
		{
			name: "Principal from rate, payment and term",
			params: Parameters{
				AnnualRate:     Some(6.0),
				TermMonths:     Some(360),
				MonthlyPayment: Some(1199.10),
			},
			validate: func(t *testing.T, loan Loan) {
				if math.Abs(loan.Principal-200000) > 1 {
					t.Errorf("Principal = %.2f, expected about 200000", loan.Principal)
				}
			},
		},
		{
			name: "Term from principal, rate and payment",
			params: Parameters{
				Principal:      Some(200000.0),
				AnnualRate:     Some(6.0),
				MonthlyPayment: Some(1199.101),
			},
			validate: func(t *testing.T, loan Loan) {
				if loan.TermMonths != 360 {
					t.Errorf("TermMonths = %d, expected 360", loan.TermMonths)
				}
			},
		},
		{
			name: "Rate from principal, payment and term",
			params: Parameters{
				Principal:      Some(10000.0),
				TermMonths:     Some(36),
				MonthlyPayment: Some(300.0),
			},
			validate: func(t *testing.T, loan Loan) {
				if loan.RateIterations == 0 {
					t.Errorf("RateIterations = 0, expected the solver to run")
				}
				if math.Abs(loan.AnnualRate-AnnualRateFromPeriodic(loan.PeriodicRate)) > 1e-9 {
					t.Errorf("AnnualRate = %v does not match PeriodicRate %v", loan.AnnualRate, loan.PeriodicRate)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(zap.NewNop())
			loan, err := resolver.Resolve(tt.params)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if err := resolver.CheckConsistency(&loan); err != nil {
				t.Fatalf("CheckConsistency() error = %v", err)
			}
			tt.validate(t, loan)
		})
	}
}

func TestResolveSuppliedAnnualRateWins(t *testing.T) {
	resolver := NewResolver(nil)
	loan, err := resolver.Resolve(Parameters{
		Principal:    Some(200000.0),
		AnnualRate:   Some(6.0),
		PeriodicRate: Some(0.01),
		TermMonths:   Some(360),
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if loan.PeriodicRate != 0.005 {
		t.Errorf("PeriodicRate = %v, expected the annual rate to define 0.005", loan.PeriodicRate)
	}
	if loan.AnnualRate != 6.0 {
		t.Errorf("AnnualRate = %v, expected 6", loan.AnnualRate)
	}
	if loan.RateIterations != 0 {
		t.Errorf("RateIterations = %d, expected the solver not to run", loan.RateIterations)
	}
}

func TestResolveFailures(t *testing.T) {
	tests := []struct {
		name    string
		params  Parameters
		wantErr error
	}{
		{
			name:    "Nothing supplied",
			params:  Parameters{},
			wantErr: ErrInsufficientInput,
		},
		{
			name: "Only two values",
			params: Parameters{
				Principal:  Some(10000.0),
				AnnualRate: Some(5.0),
			},
			wantErr: ErrInsufficientInput,
		},
		{
			name: "Zero periodic rate supplied directly",
			params: Parameters{
				Principal:    Some(10000.0),
				PeriodicRate: Some(0.0),
				TermMonths:   Some(36),
			},
			wantErr: ErrDegenerateRate,
		},
		{
			name: "Zero annual rate with payment",
			params: Parameters{
				AnnualRate:     Some(0.0),
				TermMonths:     Some(36),
				MonthlyPayment: Some(300.0),
			},
			wantErr: ErrDegenerateRate,
		},
		{
			name: "Payment never retires principal",
			params: Parameters{
				Principal:      Some(200000.0),
				AnnualRate:     Some(6.0),
				MonthlyPayment: Some(900.0),
			},
			wantErr: ErrNonAmortizing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(nil).Resolve(tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckConsistency(t *testing.T) {
	tests := []struct {
		name    string
		params  Parameters
		wantErr error
	}{
		{
			name: "All four consistent",
			params: Parameters{
				Principal:      Some(200000.0),
				AnnualRate:     Some(6.0),
				TermMonths:     Some(360),
				MonthlyPayment: Some(1199.1010503),
			},
		},
		{
			name: "All four inconsistent",
			params: Parameters{
				Principal:      Some(200000.0),
				AnnualRate:     Some(6.0),
				TermMonths:     Some(360),
				MonthlyPayment: Some(1000.0),
			},
			wantErr: ErrInconsistent,
		},
		{
			name: "Rounded payment is outside tolerance",
			params: Parameters{
				Principal:      Some(200000.0),
				AnnualRate:     Some(6.0),
				TermMonths:     Some(360),
				MonthlyPayment: Some(1199.09),
			},
			wantErr: ErrInconsistent,
		},
		{
			name: "Negative principal",
			params: Parameters{
				Principal:  Some(-5000.0),
				AnnualRate: Some(6.0),
				TermMonths: Some(12),
			},
			wantErr: ErrInconsistent,
		},
		{
			name: "Zero term",
			params: Parameters{
				Principal:      Some(5000.0),
				AnnualRate:     Some(6.0),
				TermMonths:     Some(0),
				MonthlyPayment: Some(100.0),
			},
			wantErr: ErrInconsistent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(nil)
			loan, err := resolver.Resolve(tt.params)
			if err == nil {
				err = resolver.CheckConsistency(&loan)
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckConsistencyExtraPaymentWindow(t *testing.T) {
	base := Parameters{
		Principal:  Some(200000.0),
		AnnualRate: Some(6.0),
		TermMonths: Some(360),
	}

	tests := []struct {
		name          string
		extra         ExtraPayment
		expectActive  bool
		expectedStart int
		expectedEnd   int
		expectWarning bool
	}{
		{
			name:          "No extra payment",
			extra:         ExtraPayment{StartMonth: 1},
			expectActive:  false,
			expectedStart: 1,
			expectedEnd:   360,
		},
		{
			name:          "Start without end runs to the term",
			extra:         ExtraPayment{Amount: 100, StartMonth: 13},
			expectActive:  true,
			expectedStart: 13,
			expectedEnd:   360,
		},
		{
			name:          "Explicit window",
			extra:         ExtraPayment{Amount: 100, StartMonth: 1, EndMonth: Some(24)},
			expectActive:  true,
			expectedStart: 1,
			expectedEnd:   24,
		},
		{
			name:          "Unset start defaults to the first month",
			extra:         ExtraPayment{Amount: 100},
			expectActive:  true,
			expectedStart: 1,
			expectedEnd:   360,
		},
		{
			name:          "End before start disables the extra payment",
			extra:         ExtraPayment{Amount: 100, StartMonth: 24, EndMonth: Some(12)},
			expectActive:  false,
			expectedStart: 24,
			expectedEnd:   12,
			expectWarning: true,
		},
		{
			name:          "Negative amount disables the extra payment",
			extra:         ExtraPayment{Amount: -1, StartMonth: 1},
			expectActive:  false,
			expectedStart: 1,
			expectedEnd:   360,
			expectWarning: true,
		},
		{
			name:          "Negative start disables the extra payment",
			extra:         ExtraPayment{Amount: 100, StartMonth: -1, EndMonth: Some(0)},
			expectActive:  false,
			expectedStart: -1,
			expectedEnd:   0,
			expectWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			resolver := NewResolver(zap.New(core))

			params := base
			params.Extra = tt.extra
			loan, err := resolver.Resolve(params)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if err := resolver.CheckConsistency(&loan); err != nil {
				t.Fatalf("CheckConsistency() error = %v", err)
			}

			if loan.HasExtraPayment() != tt.expectActive {
				t.Errorf("HasExtraPayment() = %v, expected %v", loan.HasExtraPayment(), tt.expectActive)
			}
			if loan.ExtraStartMonth != tt.expectedStart || loan.ExtraEndMonth != tt.expectedEnd {
				t.Errorf("window = [%d, %d], expected [%d, %d]",
					loan.ExtraStartMonth, loan.ExtraEndMonth, tt.expectedStart, tt.expectedEnd)
			}
			if (logs.Len() > 0) != tt.expectWarning {
				t.Errorf("warnings logged = %d, expectWarning %v", logs.Len(), tt.expectWarning)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	set := Some(42)
	if v, ok := set.Get(); !ok || v != 42 {
		t.Errorf("Some(42).Get() = (%v, %v)", v, ok)
	}
	if set.String() != "42" {
		t.Errorf("Some(42).String() = %q", set.String())
	}

	unset := None[float64]()
	if unset.IsSet() {
		t.Errorf("None().IsSet() = true")
	}
	if unset.OrElse(-1) != -1 {
		t.Errorf("None().OrElse(-1) = %v", unset.OrElse(-1))
	}
	if unset.String() != "unset" {
		t.Errorf("None().String() = %q", unset.String())
	}

	// A legitimate value equal to an old sentinel is still present.
	sentinel := Some(-1.0)
	if !sentinel.IsSet() {
		t.Errorf("Some(-1).IsSet() = false")
	}
}
