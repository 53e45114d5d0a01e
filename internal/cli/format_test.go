package cli

import (
	"testing"
	"time"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{10, "$10.00"},
		{1234.5, "$1,234.50"},
		{-987.654, "-$987.65"},
		{999.999, "$1,000.00"},
		{1234567.89, "$1,234,567.89"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%f) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatMonthKey(t *testing.T) {
	if got := FormatMonthKey("2025-06"); got != "Jun 2025" {
		t.Errorf("FormatMonthKey = %q, want Jun 2025", got)
	}
	// Unparseable keys pass through.
	if got := FormatMonthKey("garbage"); got != "garbage" {
		t.Errorf("FormatMonthKey passthrough = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(20); got != "20%" {
		t.Errorf("FormatPercent(20) = %q", got)
	}
	if got := FormatPercent(12.5); got != "12.5%" {
		t.Errorf("FormatPercent(12.5) = %q", got)
	}
}

func TestFormatDateShort(t *testing.T) {
	d := time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC)
	if got := FormatDateShort(d); got != "3 Apr" {
		t.Errorf("FormatDateShort = %q", got)
	}
}
