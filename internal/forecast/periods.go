package forecast

import (
	"time"

	"ccplan/internal/fiscal"
	"ccplan/internal/model"
)

// Billing cycles run from the 3rd of one month to the 2nd of the next.
const cycleStartDay = 3

// GeneratePeriods derives the sequence of credit-card billing cycles
// covered by the daily map, metadata only — totals and breakdowns are
// filled by AggregateSchedule. now anchors the repayment cutoff: cycles
// whose repayment month is already past are dropped, keeping the schedule
// forward-looking. Cycles are emitted only when their full date range is
// covered by available data.
func GeneratePeriods(days map[string]float64, now time.Time) []model.BillingPeriod {
	earliest, latest, ok := MapBounds(days, now.Location())
	if !ok {
		return nil
	}
	latestEnd := fiscal.EndOfDay(latest)

	// First full cycle: if data starts after the 3rd, the cycle anchored
	// to this month would be missing its opening days, so skip ahead.
	cycleMonth := time.Date(earliest.Year(), earliest.Month(), 1, 0, 0, 0, 0, now.Location())
	if earliest.Day() > cycleStartDay {
		cycleMonth = cycleMonth.AddDate(0, 1, 0)
	}

	nowMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var periods []model.BillingPeriod
	for {
		start := time.Date(cycleMonth.Year(), cycleMonth.Month(), cycleStartDay, 0, 0, 0, 0, now.Location())
		end := fiscal.EndOfDay(start.AddDate(0, 1, -1)) // 2nd of the next month
		if end.After(latestEnd) {
			break
		}

		// Repayment falls due one month after the cycle closes.
		repayMonth := time.Date(end.Year(), end.Month()+1, 1, 0, 0, 0, 0, now.Location())
		if !repayMonth.Before(nowMonth) {
			periods = append(periods, model.BillingPeriod{
				RepaymentMonth: fiscal.MonthKey(repayMonth),
				Start:          start,
				End:            end,
			})
		}

		cycleMonth = cycleMonth.AddDate(0, 1, 0)
	}

	return periods
}
