package model

import "time"

// BillingPeriod is one credit-card statement cycle: the 3rd of a month
// through the 2nd of the next, due in the following month.
type BillingPeriod struct {
	RepaymentMonth string // "2006-01"
	Start          time.Time
	End            time.Time
	TotalSpending  float64
	Breakdown      []CategoryBreakdown
}

// CategoryBreakdown is one category's contribution within a billing period.
// TotalAmount == ProratedAmount + sum of bill amounts.
type CategoryBreakdown struct {
	CategoryTitle  string
	TotalAmount    float64
	ProratedAmount float64
	Bills          []BillBreakdown
}

// BillBreakdown is a single bill event's contribution within a period.
type BillBreakdown struct {
	Event  BudgetEvent
	Amount float64
	Date   time.Time
}
