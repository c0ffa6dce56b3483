package employee

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestContractMonths(t *testing.T) {
	tests := []struct {
		name       string
		start, end *time.Time
		want       int
	}{
		{"same day", date(2024, 1, 15), date(2024, 1, 15), 0},
		{"day before a full month", date(2024, 1, 15), date(2024, 2, 13), 0},
		{"exactly one inclusive month", date(2024, 1, 15), date(2024, 2, 14), 1},
		{"three inclusive months", date(2024, 1, 15), date(2024, 4, 14), 3},
		{"day remainder rounds down", date(2024, 1, 15), date(2024, 4, 10), 2},
		{"one inclusive year", date(2024, 3, 1), date(2025, 2, 28), 12},
		{"year end boundary", date(2024, 1, 1), date(2024, 12, 31), 12},
	}
	for _, tc := range tests {
		got := ContractMonths(tc.start, tc.end)
		if got == nil {
			t.Errorf("%s: got nil, want %d", tc.name, tc.want)
			continue
		}
		if *got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, *got, tc.want)
		}
	}
}

func TestContractMonthsAbsentDates(t *testing.T) {
	if got := ContractMonths(nil, date(2024, 4, 10)); got != nil {
		t.Errorf("nil start should yield nil, got %d", *got)
	}
	if got := ContractMonths(date(2024, 1, 15), nil); got != nil {
		t.Errorf("nil end should yield nil, got %d", *got)
	}
	var zero time.Time
	if got := ContractMonths(&zero, date(2024, 4, 10)); got != nil {
		t.Errorf("zero start should yield nil, got %d", *got)
	}
}

func TestContractMonthsNonNegative(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for days := 0; days < 800; days += 13 {
		end := start.AddDate(0, 0, days)
		got := ContractMonths(&start, &end)
		if got == nil || *got < 0 {
			t.Fatalf("end %v: expected non-negative months, got %v", end, got)
		}
	}
}
