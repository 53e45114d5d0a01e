package forecast

import (
	"testing"
	"time"

	"ccplan/internal/fiscal"
	"ccplan/internal/model"
)

func TestProrate_MonthlyCoversAnchorMonth(t *testing.T) {
	fy := fy2025(t)
	ev := monthlyEvent(t, -300, date(t, 2025, time.April, 15), "Groceries")

	p := Prorate(ev, ev.Date, fy)

	if p.Start.Day() != 1 || p.Start.Month() != time.April {
		t.Errorf("span start = %v, want April 1", p.Start)
	}
	if p.End.Day() != 30 || p.End.Month() != time.April {
		t.Errorf("span end = %v, want April 30", p.End)
	}
	// daily * daysInMonth == abs(amount)
	if got := p.Daily * 30; !approxEqual(got, 300, 1e-9) {
		t.Errorf("daily*30 = %f, want 300", got)
	}
	if p.MonthlyFallback {
		t.Error("MonthlyFallback set for recognized monthly type")
	}
}

func TestProrate_MonthlyIntervalSpreadsMonths(t *testing.T) {
	fy := fy2025(t)
	ev := monthlyEvent(t, -273, date(t, 2025, time.April, 10), "Insurance")
	ev.RepeatInterval = 3

	p := Prorate(ev, ev.Date, fy)

	if p.End.Month() != time.June || p.End.Day() != 30 {
		t.Errorf("span end = %v, want June 30", p.End)
	}
	// Apr+May+Jun = 91 days
	if got := p.Daily * 91; !approxEqual(got, 273, 1e-9) {
		t.Errorf("daily*91 = %f, want 273", got)
	}
}

func TestProrate_YearlySmearsWholeFiscalYear(t *testing.T) {
	fy := fy2025(t)
	ev := monthlyEvent(t, -730, date(t, 2025, time.September, 20), "Car Rego")
	ev.RepeatType = model.RepeatYearly
	ev.RepeatInterval = 5 // ignored for yearly

	p := Prorate(ev, ev.Date, fy)

	if !p.Start.Equal(fy.Start) || !p.End.Equal(fy.End) {
		t.Errorf("span = %v..%v, want full fiscal year", p.Start, p.End)
	}
	if got := p.Daily * float64(fy.Days()); !approxEqual(got, 730, 1e-9) {
		t.Errorf("daily*%d = %f, want 730", fy.Days(), got)
	}
}

func TestProrate_UnknownTypeFallsBackToMonthly(t *testing.T) {
	fy := fy2025(t)
	ev := monthlyEvent(t, -300, date(t, 2025, time.April, 15), "Mystery")
	ev.RepeatType = "fortnightly"

	p := Prorate(ev, ev.Date, fy)

	if !p.MonthlyFallback {
		t.Fatal("MonthlyFallback not set for unknown repeat type")
	}
	if got := p.Daily * 30; !approxEqual(got, 300, 1e-9) {
		t.Errorf("fallback daily*30 = %f, want 300 (monthly policy)", got)
	}
}

func TestProrate_ClipsAtFiscalYearEnd(t *testing.T) {
	fy := fy2025(t)
	// March anchor with a 2-month interval runs past March 31.
	ev := monthlyEvent(t, -200, date(t, 2026, time.March, 5), "Power")
	ev.RepeatInterval = 2

	p := Prorate(ev, ev.Date, fy)

	if !p.End.Equal(fy.End) {
		t.Errorf("span end = %v, want fiscal year end %v", p.End, fy.End)
	}
	// Clipping truncates attributed spend: 31 of 61 days remain.
	attributed := p.Daily * float64(fiscal.DaysInclusive(p.Start, p.End))
	if attributed >= 200 {
		t.Errorf("clipped attribution = %f, want < 200", attributed)
	}
	if !approxEqual(attributed, 200.0/61*31, 1e-9) {
		t.Errorf("clipped attribution = %f, want %f", attributed, 200.0/61*31)
	}
}

func TestProrate_SpanEntirelyBeforeFiscalYearIsEmpty(t *testing.T) {
	fy := fy2025(t)
	ev := monthlyEvent(t, -100, date(t, 2025, time.February, 10), "Old")

	p := Prorate(ev, ev.Date, fy)

	if !p.Empty() {
		t.Errorf("span = %v..%v, want empty for pre-fiscal-year anchor", p.Start, p.End)
	}
	if p.Daily != 0 {
		t.Errorf("daily = %f, want 0 for empty span", p.Daily)
	}
}
