package forecast

import (
	"sort"
	"time"

	"ccplan/internal/fiscal"
	"ccplan/internal/model"
)

// BreakdownResult is one billing period's categorized totals plus
// non-fatal diagnostics.
type BreakdownResult struct {
	Categories   []model.CategoryBreakdown
	Warnings     []string
	SkippedDates int
}

// PeriodBreakdown re-derives a billing period's category totals directly
// from the raw event list. Bill events contribute their full amount when
// dated inside the period; prorated events contribute their daily rate
// times the overlap between their span and the period. This path is
// deliberately independent of the daily map — the two agree only
// approximately.
func PeriodBreakdown(events []model.BudgetEvent, periodStart, periodEnd time.Time, fy fiscal.Year, opts Options) BreakdownResult {
	var result BreakdownResult

	ps := fiscal.StartOfDay(periodStart)
	pe := fiscal.EndOfDay(periodEnd)

	byCategory := make(map[string]*model.CategoryBreakdown)
	category := func(title string) *model.CategoryBreakdown {
		cb, ok := byCategory[title]
		if !ok {
			cb = &model.CategoryBreakdown{CategoryTitle: title}
			byCategory[title] = cb
		}
		return cb
	}

	for _, ev := range events {
		if ev.Transfer() || ev.Category.Title == opts.RepaymentCategory {
			continue
		}
		if ev.Date.IsZero() {
			result.SkippedDates++
			continue
		}

		if ev.IsBill() {
			if ev.Date.Before(ps) || ev.Date.After(pe) {
				continue
			}
			amount := ev.Amount
			if amount < 0 {
				amount = -amount
			}
			cb := category(ev.Category.Title)
			cb.Bills = append(cb.Bills, model.BillBreakdown{
				Event:  ev,
				Amount: amount,
				Date:   ev.Date,
			})
			cb.TotalAmount += amount
			continue
		}

		p := Prorate(ev, ev.Date, fy)
		if p.MonthlyFallback {
			result.Warnings = append(result.Warnings, fallbackWarning(ev))
		}
		if p.Empty() {
			continue
		}

		overlapStart := p.Start
		if overlapStart.Before(ps) {
			overlapStart = ps
		}
		overlapEnd := p.End
		if overlapEnd.After(pe) {
			overlapEnd = pe
		}
		if overlapEnd.Before(overlapStart) {
			continue
		}

		share := p.Daily * float64(fiscal.DaysInclusive(overlapStart, overlapEnd))
		cb := category(ev.Category.Title)
		cb.ProratedAmount += share
		cb.TotalAmount += share
	}

	for _, cb := range byCategory {
		if cb.TotalAmount == 0 {
			continue
		}
		result.Categories = append(result.Categories, *cb)
	}
	sort.Slice(result.Categories, func(i, j int) bool {
		a, b := result.Categories[i], result.Categories[j]
		if a.TotalAmount != b.TotalAmount {
			return a.TotalAmount > b.TotalAmount
		}
		return a.CategoryTitle < b.CategoryTitle
	})

	return result
}

// AggregateSchedule fills totals and breakdowns for each generated period.
// Warnings are deduplicated across periods (the same event would otherwise
// warn once per cycle).
func AggregateSchedule(events []model.BudgetEvent, periods []model.BillingPeriod, fy fiscal.Year, opts Options) ([]model.BillingPeriod, []string) {
	out := make([]model.BillingPeriod, len(periods))
	seen := make(map[string]struct{})
	var warnings []string

	for i, period := range periods {
		br := PeriodBreakdown(events, period.Start, period.End, fy, opts)

		period.Breakdown = br.Categories
		period.TotalSpending = 0
		for _, cb := range br.Categories {
			period.TotalSpending += cb.TotalAmount
		}
		out[i] = period

		for _, w := range br.Warnings {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			warnings = append(warnings, w)
		}
	}

	return out, warnings
}
