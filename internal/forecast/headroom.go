package forecast

import (
	"errors"

	"ccplan/internal/model"
)

// ErrHeadroomRange is returned when the headroom percentage falls outside
// the accepted [0, 100] range.
var ErrHeadroomRange = errors.New("headroom percent must be between 0 and 100")

// ApplyHeadroom returns a copy of the schedule with every total marked up
// by percent as a safety margin. Category and bill amounts scale
// proportionally so a displayed breakdown still sums to its period total.
// The input schedule is left untouched for side-by-side comparison.
func ApplyHeadroom(periods []model.BillingPeriod, percent float64) ([]model.BillingPeriod, error) {
	if percent < 0 || percent > 100 {
		return nil, ErrHeadroomRange
	}
	factor := 1 + percent/100

	adjusted := make([]model.BillingPeriod, len(periods))
	for i, period := range periods {
		period.TotalSpending *= factor

		breakdown := make([]model.CategoryBreakdown, len(period.Breakdown))
		for j, cb := range period.Breakdown {
			cb.TotalAmount *= factor
			cb.ProratedAmount *= factor

			bills := make([]model.BillBreakdown, len(cb.Bills))
			for k, bill := range cb.Bills {
				bill.Amount *= factor
				bills[k] = bill
			}
			cb.Bills = bills
			breakdown[j] = cb
		}
		period.Breakdown = breakdown
		adjusted[i] = period
	}

	return adjusted, nil
}
