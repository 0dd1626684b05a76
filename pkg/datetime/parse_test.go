package datetime

import (
	"testing"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateTimeLayout,
			dateStr:  "2025-01",
			expected: "2025-01",
		},
		{
			name:     "Another valid date",
			layout:   DateTimeLayout,
			dateStr:  "2030-12",
			expected: "2030-12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateTimeLayout, "invalid-date")
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "Valid month", date: "2025-01", wantErr: false},
		{name: "December", date: "2030-12", wantErr: false},
		{name: "Month out of range", date: "2025-13", wantErr: true},
		{name: "Full date", date: "2025-01-15", wantErr: true},
		{name: "Empty", date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(tt.date)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
		})
	}
}

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		layout   string
		months   int
		expected string
		wantErr  bool
	}{
		{
			name:     "Add multiple years",
			date:     "2025-01",
			layout:   DateTimeLayout,
			months:   24,
			expected: "2027-01",
		},
		{
			name:     "Subtract multiple years",
			date:     "2025-01",
			layout:   DateTimeLayout,
			months:   -24,
			expected: "2023-01",
		},
		{
			name:     "Cross year boundary forward",
			date:     "2025-06",
			layout:   DateTimeLayout,
			months:   8,
			expected: "2026-02",
		},
		{
			name:     "Zero months",
			date:     "2025-06",
			layout:   DateTimeLayout,
			months:   0,
			expected: "2025-06",
		},
		{
			name:     "Invalid date",
			date:     "June 2025",
			layout:   DateTimeLayout,
			months:   1,
			expected: "June 2025",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, tt.layout, tt.months)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OffsetDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if result != tt.expected {
				t.Errorf("OffsetDate() = %s, expected %s", result, tt.expected)
			}
		})
	}
}

func TestPaymentDate(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		month    int
		expected string
	}{
		{"First payment", "2025-01", 1, "2025-01"},
		{"Twelfth payment", "2025-01", 12, "2025-12"},
		{"Last payment of a 30 year loan", "2025-01", 360, "2054-12"},
		{"Mid-year start", "2025-07", 7, "2026-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := PaymentDate(tt.first, tt.month)
			if err != nil {
				t.Fatalf("PaymentDate() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("PaymentDate(%s, %d) = %s, expected %s", tt.first, tt.month, result, tt.expected)
			}
		})
	}
}

func TestYearsAndMonths(t *testing.T) {
	tests := []struct {
		months         int
		expectedYears  int
		expectedMonths int
	}{
		{0, 0, 0},
		{11, 0, 11},
		{12, 1, 0},
		{127, 10, 7},
	}

	for _, tt := range tests {
		years, months := YearsAndMonths(tt.months)
		if years != tt.expectedYears || months != tt.expectedMonths {
			t.Errorf("YearsAndMonths(%d) = (%d, %d), expected (%d, %d)",
				tt.months, years, months, tt.expectedYears, tt.expectedMonths)
		}
	}
}
