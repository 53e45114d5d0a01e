package pocketsmith

import (
	"time"

	"ccplan/internal/model"
)

// User is the authorized PocketSmith user.
type User struct {
	ID               int64  `json:"id"`
	Login            string `json:"login"`
	Name             string `json:"name"`
	BaseCurrencyCode string `json:"base_currency_code"`
	TimeZone         string `json:"time_zone"`
}

// rawCategory is a category as it appears nested in an event payload.
type rawCategory struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	IsBill     bool   `json:"is_bill"`
	IsTransfer bool   `json:"is_transfer"`
}

// rawEvent is the wire shape of a budget event. Only the fields the
// planner reads are decoded; everything else passes through untouched.
type rawEvent struct {
	ID             string       `json:"id"`
	Amount         float64      `json:"amount"`
	Date           string       `json:"date"`
	Category       *rawCategory `json:"category"`
	IsTransfer     bool         `json:"is_transfer"`
	RepeatType     string       `json:"repeat_type"`
	RepeatInterval int          `json:"repeat_interval"`
	Note           string       `json:"note"`
}

// toModel converts a wire event to the domain type, interpreting the date
// in loc. ok is false when the date is missing or unparseable; those
// events are skipped and counted rather than aborting the fetch.
func (r rawEvent) toModel(loc *time.Location) (model.BudgetEvent, bool) {
	date, err := time.ParseInLocation("2006-01-02", r.Date, loc)
	if err != nil {
		return model.BudgetEvent{}, false
	}

	ev := model.BudgetEvent{
		ID:             r.ID,
		Amount:         r.Amount,
		Date:           date,
		IsTransfer:     r.IsTransfer,
		RepeatType:     model.RepeatType(r.RepeatType),
		RepeatInterval: r.RepeatInterval,
		Note:           r.Note,
	}
	if r.Category != nil {
		ev.Category = model.Category{
			ID:         r.Category.ID,
			Title:      r.Category.Title,
			IsBill:     r.Category.IsBill,
			IsTransfer: r.Category.IsTransfer,
		}
	}
	return ev, true
}

// EventsResult is a fetched event span plus decode diagnostics.
type EventsResult struct {
	Events       []model.BudgetEvent
	SkippedDates int // events dropped for unparseable dates
}
