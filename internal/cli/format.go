// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ccplan/internal/fiscal"
)

// FormatAmount formats a currency value with comma grouping and cents.
// e.g., 1234.5 -> "$1,234.50"
func FormatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	whole := int64(v)
	cents := int64(v*100+0.5) - whole*100
	if cents >= 100 { // rounding carried into the next dollar
		whole++
		cents -= 100
	}

	s := fmt.Sprintf("$%s.%02d", groupThousands(whole), cents)
	if neg {
		return "-" + s
	}
	return s
}

// FormatMonthKey renders a "2006-01" repayment-month key as "Jan 2006".
func FormatMonthKey(key string) string {
	t, err := time.Parse(fiscal.MonthKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// FormatDate renders a date as "Mon 2 Jan 2006".
func FormatDate(t time.Time) string {
	return t.Format("Mon 2 Jan 2006")
}

// FormatDateShort renders a date as "2 Jan".
func FormatDateShort(t time.Time) string {
	return t.Format("2 Jan")
}

// FormatPercent formats a 0-100 percentage for display.
func FormatPercent(pct float64) string {
	if pct == float64(int64(pct)) {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
