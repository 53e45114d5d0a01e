// Package model defines domain types for ccplan budget events and repayment schedules.
package model

import "time"

// RepeatType describes how a budget event recurs. Unrecognized values from
// the API are kept verbatim so the proration fallback can report them.
type RepeatType string

const (
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

// Category is a budget category as reported by PocketSmith.
type Category struct {
	ID         int64
	Title      string
	IsBill     bool
	IsTransfer bool
}

// BudgetEvent is one occurrence of a budget line: a bill, a subscription,
// or a scheduled transfer. Amounts are signed; negative means a debit.
type BudgetEvent struct {
	ID             string
	Amount         float64
	Date           time.Time // day precision, fiscal time zone
	Category       Category
	IsTransfer     bool
	RepeatType     RepeatType
	RepeatInterval int
	Note           string
}

// IsBill reports whether the event's full amount lands on its exact date
// rather than being prorated across a span.
func (e BudgetEvent) IsBill() bool {
	return e.Category.IsBill
}

// Transfer reports whether the event or its category is a transfer.
// Transfers move money between accounts and never count as spending.
func (e BudgetEvent) Transfer() bool {
	return e.IsTransfer || e.Category.IsTransfer
}

// Interval returns the repeat interval, floored at 1.
func (e BudgetEvent) Interval() int {
	if e.RepeatInterval < 1 {
		return 1
	}
	return e.RepeatInterval
}
