package forecast

import (
	"fmt"
	"time"

	"ccplan/internal/fiscal"
	"ccplan/internal/model"
)

// Options carries the knobs shared by both aggregation paths.
type Options struct {
	// RepaymentCategory is the title of the category holding the
	// computed credit-card repayment events upstream. It is always
	// excluded from aggregation — it is the output of this computation
	// and must not feed back into it. Exact string match.
	RepaymentCategory string
}

// BuildResult is the daily spending calendar plus non-fatal diagnostics.
type BuildResult struct {
	// Days maps every calendar date in the fiscal year ("2006-01-02")
	// to the accumulated projected spend for that day. The map is
	// total: days no event touches hold 0.
	Days map[string]float64

	// Warnings holds per-event diagnostics (unknown repeat types).
	Warnings []string

	// SkippedDates counts events dropped for missing/unparseable dates.
	SkippedDates int
}

// BuildDailyMap projects events onto a dense day→amount calendar spanning
// the whole fiscal year. Transfers and the repayment category are
// excluded; bill events land in full on their exact date; everything else
// is prorated evenly across its span. Amounts accumulate additively.
func BuildDailyMap(events []model.BudgetEvent, fy fiscal.Year, opts Options) BuildResult {
	result := BuildResult{Days: make(map[string]float64, fy.Days())}

	for day := fy.Start; !day.After(fy.End); day = day.AddDate(0, 0, 1) {
		result.Days[fiscal.DayKey(day)] = 0
	}

	for _, ev := range events {
		if ev.Transfer() || ev.Category.Title == opts.RepaymentCategory {
			continue
		}
		if ev.Date.IsZero() {
			result.SkippedDates++
			continue
		}
		if !fy.Contains(ev.Date) {
			continue
		}

		if ev.IsBill() {
			amount := ev.Amount
			if amount < 0 {
				amount = -amount
			}
			result.Days[fiscal.DayKey(ev.Date)] += amount
			continue
		}

		p := Prorate(ev, ev.Date, fy)
		if p.MonthlyFallback {
			result.Warnings = append(result.Warnings, fallbackWarning(ev))
		}
		if p.Empty() {
			continue
		}
		addSpan(result.Days, p)
	}

	return result
}

// addSpan credits the daily rate to every day of the proration span.
func addSpan(days map[string]float64, p Proration) {
	end := fiscal.StartOfDay(p.End)
	for day := fiscal.StartOfDay(p.Start); !day.After(end); day = day.AddDate(0, 0, 1) {
		days[fiscal.DayKey(day)] += p.Daily
	}
}

func fallbackWarning(ev model.BudgetEvent) string {
	return fmt.Sprintf("unknown repeat type %q on %q (%s); prorating as monthly",
		ev.RepeatType, ev.Category.Title, ev.Date.Format(fiscal.DayKeyLayout))
}

// MapBounds returns the earliest and latest dates present in a daily map,
// parsed in loc. ok is false when the map is empty.
func MapBounds(days map[string]float64, loc *time.Location) (earliest, latest time.Time, ok bool) {
	var minKey, maxKey string
	for key := range days {
		if minKey == "" || key < minKey {
			minKey = key
		}
		if key > maxKey {
			maxKey = key
		}
	}
	if minKey == "" {
		return time.Time{}, time.Time{}, false
	}

	// Keys are produced by fiscal.DayKey; a parse failure here means the
	// map was built by hand with a bad key.
	earliest, errA := time.ParseInLocation(fiscal.DayKeyLayout, minKey, loc)
	latest, errB := time.ParseInLocation(fiscal.DayKeyLayout, maxKey, loc)
	if errA != nil || errB != nil {
		return time.Time{}, time.Time{}, false
	}
	return earliest, latest, true
}
