// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/amortize/pkg/constants"
)

const (
	// DateTimeLayout is the format of the first payment month and of the
	// schedule dates.
	DateTimeLayout = constants.DateTimeLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ValidateDate checks that date is a well-formed YYYY-MM month.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateTimeLayout, date); err != nil {
		return fmt.Errorf("invalid month %q, expected YYYY-MM: %w", date, err)
	}
	return nil
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// PaymentDate returns the calendar month of the given 1-based payment number
// when the first payment falls in firstPayment.
func PaymentDate(firstPayment string, month int) (string, error) {
	return OffsetDate(firstPayment, DateTimeLayout, month-1)
}

// YearsAndMonths splits a number of months into whole years and the
// remaining months.
func YearsAndMonths(months int) (int, int) {
	return months / constants.MonthsPerYear, months % constants.MonthsPerYear
}
