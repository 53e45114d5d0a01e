package forecast

import (
	"math"
	"testing"
	"time"

	"ccplan/internal/fiscal"
	"ccplan/internal/model"
)

const repaymentCategory = "Credit Card Repayments"

func testOptions() Options {
	return Options{RepaymentCategory: repaymentCategory}
}

func testZone(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(fiscal.DefaultZone)
	if err != nil {
		t.Fatalf("loading %s: %v", fiscal.DefaultZone, err)
	}
	return loc
}

// fy2025 is the fiscal year 2025-04-01 .. 2026-03-31 used by most tests.
func fy2025(t *testing.T) fiscal.Year {
	t.Helper()
	loc := testZone(t)
	return fiscal.CurrentYear(time.Date(2025, time.June, 1, 0, 0, 0, 0, loc), loc)
}

func date(t *testing.T, y int, m time.Month, d int) time.Time {
	t.Helper()
	return time.Date(y, m, d, 0, 0, 0, 0, testZone(t))
}

func monthlyEvent(t *testing.T, amount float64, day time.Time, category string) model.BudgetEvent {
	t.Helper()
	return model.BudgetEvent{
		Amount:         amount,
		Date:           day,
		Category:       model.Category{Title: category},
		RepeatType:     model.RepeatMonthly,
		RepeatInterval: 1,
	}
}

func billEvent(t *testing.T, amount float64, day time.Time, category string) model.BudgetEvent {
	t.Helper()
	ev := monthlyEvent(t, amount, day, category)
	ev.Category.IsBill = true
	return ev
}

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
