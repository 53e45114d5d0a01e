package store

import (
	"path/filepath"
	"testing"
	"time"

	"ccplan/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_RoundTrip(t *testing.T) {
	c := openTestCache(t)
	span := "2025-04-01..2026-03-31"

	events := []model.BudgetEvent{
		{
			ID:     "ev-1",
			Amount: -300,
			Date:   time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC),
			Category: model.Category{
				ID: 7, Title: "Groceries",
			},
			RepeatType:     model.RepeatMonthly,
			RepeatInterval: 1,
			Note:           "weekly shop",
		},
		{
			ID:     "ev-2",
			Amount: -150,
			Date:   time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC),
			Category: model.Category{
				ID: 9, Title: "Power", IsBill: true,
			},
			RepeatType:     model.RepeatMonthly,
			RepeatInterval: 1,
		},
	}

	fetchedAt := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	if err := c.ReplaceEvents(span, events, fetchedAt); err != nil {
		t.Fatalf("ReplaceEvents: %v", err)
	}

	loaded, err := c.LoadEvents(span, time.UTC)
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d events, want 2", len(loaded))
	}

	ev := loaded[0] // ordered by date
	if ev.ID != "ev-1" || ev.Amount != -300 || ev.Category.Title != "Groceries" {
		t.Errorf("loaded event = %+v", ev)
	}
	if !ev.Date.Equal(events[0].Date) {
		t.Errorf("date = %v, want %v", ev.Date, events[0].Date)
	}
	if !loaded[1].Category.IsBill {
		t.Error("bill flag lost in round trip")
	}

	got, ok, err := c.FetchedAt(span)
	if err != nil || !ok {
		t.Fatalf("FetchedAt: ok=%v err=%v", ok, err)
	}
	if !got.Equal(fetchedAt) {
		t.Errorf("fetched at = %v, want %v", got, fetchedAt)
	}
}

func TestCache_ReplaceDropsOldSpanEvents(t *testing.T) {
	c := openTestCache(t)
	span := "2025-04-01..2026-03-31"
	day := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	first := []model.BudgetEvent{{ID: "old", Amount: -1, Date: day}}
	if err := c.ReplaceEvents(span, first, time.Now()); err != nil {
		t.Fatalf("ReplaceEvents: %v", err)
	}

	second := []model.BudgetEvent{{ID: "new", Amount: -2, Date: day}}
	if err := c.ReplaceEvents(span, second, time.Now()); err != nil {
		t.Fatalf("ReplaceEvents: %v", err)
	}

	loaded, err := c.LoadEvents(span, time.UTC)
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "new" {
		t.Errorf("loaded = %+v, want only the replacement event", loaded)
	}

	count, err := c.EventCount(span)
	if err != nil || count != 1 {
		t.Errorf("EventCount = %d (err %v), want 1", count, err)
	}
}

func TestCache_UnknownSpan(t *testing.T) {
	c := openTestCache(t)

	_, ok, err := c.FetchedAt("nope")
	if err != nil {
		t.Fatalf("FetchedAt: %v", err)
	}
	if ok {
		t.Error("FetchedAt ok for unknown span")
	}

	loaded, err := c.LoadEvents("nope", time.UTC)
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("loaded %d events for unknown span, want 0", len(loaded))
	}
}
