// Package output renders amortization reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/amortize/internal/calculator"
	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/datetime"
	"github.com/iwvelando/amortize/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const banner = "##############################################"

// Write renders report to w in the named format.
func Write(w io.Writer, format string, report *calculator.Report) error {
	switch format {
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, report)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, report)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report *calculator.Report) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	dated := report.FirstPayment != ""

	b.WriteString("\n" + banner + "\n\n")
	_, _ = p.Fprintf(&b, "      Principal: %12.2f\n", report.Principal)
	_, _ = p.Fprintf(&b, "           Term: %d months\n", report.TermMonths)
	_, _ = p.Fprintf(&b, "    Annual Rate: %.3f%%\n", report.AnnualRate)
	_, _ = p.Fprintf(&b, "  Periodic Rate: %.7f\n", report.PeriodicRate)
	if dated {
		_, _ = p.Fprintf(&b, "  First Payment: %s\n", report.FirstPayment)
	}
	b.WriteString("\n")
	_, _ = p.Fprintf(&b, "Monthly Payment: %12.2f\n", report.MonthlyPayment)
	if report.ExtraPayment > 0 {
		_, _ = p.Fprintf(&b, "  Extra Payment: %12.2f (months %d to %d)\n",
			report.ExtraPayment, report.ExtraStartMonth, report.ExtraEndMonth)
	}
	b.WriteString("\n")

	if report.ShowSchedule {
		if dated {
			b.WriteString("Month     Date     Interest   Principal       Balance\n")
		} else {
			b.WriteString("Month     Interest   Principal       Balance\n")
		}
		for _, row := range report.Schedule {
			if dated {
				_, _ = p.Fprintf(&b, "%5d %8s %12.2f %11.2f %13.2f\n",
					row.Month, row.Date, row.Interest, row.Principal, row.Balance)
			} else {
				_, _ = p.Fprintf(&b, "%5d %12.2f %11.2f %13.2f\n",
					row.Month, row.Interest, row.Principal, row.Balance)
			}
		}
		b.WriteString("\n")
	}

	summary := report.Summary
	if report.HasExtraPayments() {
		years, months := datetime.YearsAndMonths(summary.MonthsSaved)
		_, _ = p.Fprintf(&b, "   Reduced Term: %d months (shorter by %d month(s) = %d year(s) %d month(s))\n",
			summary.PayoffMonth, summary.MonthsSaved, years, months)
	}
	_, _ = p.Fprintf(&b, " Total Payments: %12.2f\n", summary.TotalPayments)
	if report.HasExtraPayments() {
		_, _ = p.Fprintf(&b, " Extra Payments: %12.2f\n", summary.TotalExtra)
	}
	_, _ = p.Fprintf(&b, " Total Interest: %12.2f\n", summary.TotalInterest)
	if report.HasExtraPayments() {
		_, _ = p.Fprintf(&b, "  Total Savings: %12.2f\n", summary.TotalSavings)
	}
	_, _ = p.Fprintf(&b, "  Intrst/Prncpl: %9.2f%%\n", summary.InterestToPrincipal)
	if summary.PayoffDate != "" {
		_, _ = p.Fprintf(&b, "    Payoff Date: %s\n", summary.PayoffDate)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat outputs the schedule in comma-separated value format, one row
// per month.
func CsvFormat(w io.Writer, report *calculator.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "date", "interest", "principal", "extra", "balance"}); err != nil {
		return err
	}
	for _, row := range report.Schedule {
		record := []string{
			strconv.Itoa(row.Month),
			row.Date,
			formatAmount(row.Interest),
			formatAmount(row.Principal),
			formatAmount(row.Extra),
			formatAmount(row.Balance),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the report as indented JSON. The schedule is only
// included when requested.
func JSONFormat(w io.Writer, report *calculator.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(withoutHiddenSchedule(report))
}

// YAMLFormat outputs the report as YAML. The schedule is only included when
// requested.
func YAMLFormat(w io.Writer, report *calculator.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(withoutHiddenSchedule(report)); err != nil {
		return err
	}
	return enc.Close()
}

func withoutHiddenSchedule(report *calculator.Report) *calculator.Report {
	if report.ShowSchedule {
		return report
	}
	trimmed := *report
	trimmed.Schedule = nil
	return &trimmed
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(mathutil.Round(value), 'f', 2, 64)
}
