// Package forecast implements the proration and billing-cycle aggregation
// engine: budget events in, daily spending calendar and categorized
// repayment schedule out. Everything here is pure; callers supply "now".
package forecast

import (
	"time"

	"ccplan/internal/fiscal"
	"ccplan/internal/model"
)

// Proration is the contiguous span an event's amount is spread across,
// clipped to the fiscal year, and the even daily rate over that span.
type Proration struct {
	Start time.Time
	End   time.Time
	Daily float64

	// MonthlyFallback is set when the event's repeat type was not
	// recognized and the monthly policy was applied as a default.
	MonthlyFallback bool
}

// Empty reports whether the clipped span contains no days.
func (p Proration) Empty() bool {
	return p.Start.IsZero()
}

// Prorate computes the span and daily rate for one event.
//
// Monthly events cover [start of anchor month, start + interval months - 1
// day], letting an interval > 1 spread a single amount over consecutive
// months. Yearly events smear the full amount across the entire fiscal
// year regardless of anchor or interval. Any other repeat type falls back
// to the monthly policy. Both spans are then clipped to the fiscal year;
// clipping intentionally truncates the attributed total.
func Prorate(ev model.BudgetEvent, anchor time.Time, fy fiscal.Year) Proration {
	var p Proration

	switch ev.RepeatType {
	case model.RepeatYearly:
		p.Start = fy.Start
		p.End = fy.End
	case model.RepeatMonthly:
		p.Start, p.End = monthlySpan(anchor, ev.Interval())
	default:
		p.Start, p.End = monthlySpan(anchor, ev.Interval())
		p.MonthlyFallback = true
	}

	// The daily rate divides over the full un-clipped span. Clipping below
	// then drops the out-of-year days, so a clipped event attributes less
	// than its full amount inside the fiscal year. That truncation is the
	// documented behavior, not a bug.
	amount := ev.Amount
	if amount < 0 {
		amount = -amount
	}
	p.Daily = amount / float64(fiscal.DaysInclusive(p.Start, p.End))

	if p.Start.Before(fy.Start) {
		p.Start = fy.Start
	}
	if p.End.After(fy.End) {
		p.End = fy.End
	}

	// A span lying entirely outside the fiscal year has no days left.
	if p.End.Before(p.Start) {
		return Proration{MonthlyFallback: p.MonthlyFallback}
	}

	return p
}

func monthlySpan(anchor time.Time, interval int) (time.Time, time.Time) {
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	end := fiscal.EndOfDay(start.AddDate(0, interval, -1))
	return start, end
}
