package calculator

// Report is the outcome of a successful calculation.
type Report struct {
	Principal       float64 `json:"principal" yaml:"principal"`
	TermMonths      int     `json:"termMonths" yaml:"termMonths"`
	AnnualRate      float64 `json:"annualRate" yaml:"annualRate"`
	PeriodicRate    float64 `json:"periodicRate" yaml:"periodicRate"`
	MonthlyPayment  float64 `json:"monthlyPayment" yaml:"monthlyPayment"`
	ExtraPayment    float64 `json:"extraPayment,omitempty" yaml:"extraPayment,omitempty"`
	ExtraStartMonth int     `json:"extraStartMonth,omitempty" yaml:"extraStartMonth,omitempty"`
	ExtraEndMonth   int     `json:"extraEndMonth,omitempty" yaml:"extraEndMonth,omitempty"`
	FirstPayment    string  `json:"firstPayment,omitempty" yaml:"firstPayment,omitempty"`
	ShowSchedule    bool    `json:"-" yaml:"-"`
	Schedule        []Row   `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Summary         Summary `json:"summary" yaml:"summary"`
}

// Row is one month of the amortization schedule.
type Row struct {
	Month     int     `json:"month" yaml:"month"`
	Date      string  `json:"date,omitempty" yaml:"date,omitempty"`
	Interest  float64 `json:"interest" yaml:"interest"`
	Principal float64 `json:"principal" yaml:"principal"`
	Extra     float64 `json:"extra,omitempty" yaml:"extra,omitempty"`
	Balance   float64 `json:"balance" yaml:"balance"`
}

// Summary holds the totals over the whole schedule.
type Summary struct {
	PayoffMonth         int     `json:"payoffMonth" yaml:"payoffMonth"`
	PayoffDate          string  `json:"payoffDate,omitempty" yaml:"payoffDate,omitempty"`
	MonthsSaved         int     `json:"monthsSaved,omitempty" yaml:"monthsSaved,omitempty"`
	TotalPayments       float64 `json:"totalPayments" yaml:"totalPayments"`
	TotalExtra          float64 `json:"totalExtra,omitempty" yaml:"totalExtra,omitempty"`
	TotalInterest       float64 `json:"totalInterest" yaml:"totalInterest"`
	TotalSavings        float64 `json:"totalSavings,omitempty" yaml:"totalSavings,omitempty"`
	InterestToPrincipal float64 `json:"interestToPrincipal" yaml:"interestToPrincipal"`
}

// HasExtraPayments reports whether any extra payment was made.
func (r *Report) HasExtraPayments() bool {
	return r.Summary.TotalExtra > 0
}
