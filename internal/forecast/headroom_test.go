package forecast

import (
	"errors"
	"testing"
	"time"

	"ccplan/internal/model"
)

func samplePeriods(t *testing.T) []model.BillingPeriod {
	t.Helper()
	return []model.BillingPeriod{
		{
			RepaymentMonth: "2025-06",
			Start:          date(t, 2025, time.April, 3),
			End:            date(t, 2025, time.May, 2),
			TotalSpending:  1000,
			Breakdown: []model.CategoryBreakdown{
				{
					CategoryTitle:  "Groceries",
					TotalAmount:    600,
					ProratedAmount: 450,
					Bills:          []model.BillBreakdown{{Amount: 150}},
				},
				{CategoryTitle: "Power", TotalAmount: 400, ProratedAmount: 400},
			},
		},
	}
}

func TestApplyHeadroom_TwentyPercent(t *testing.T) {
	original := samplePeriods(t)

	adjusted, err := ApplyHeadroom(original, 20)
	if err != nil {
		t.Fatalf("ApplyHeadroom: %v", err)
	}

	if !approxEqual(adjusted[0].TotalSpending, 1200, 1e-9) {
		t.Errorf("adjusted total = %f, want 1200", adjusted[0].TotalSpending)
	}
	if !approxEqual(adjusted[0].Breakdown[0].TotalAmount, 720, 1e-9) {
		t.Errorf("adjusted category total = %f, want 720", adjusted[0].Breakdown[0].TotalAmount)
	}
	if !approxEqual(adjusted[0].Breakdown[0].Bills[0].Amount, 180, 1e-9) {
		t.Errorf("adjusted bill = %f, want 180", adjusted[0].Breakdown[0].Bills[0].Amount)
	}

	// The original schedule must survive for side-by-side display.
	if !approxEqual(original[0].TotalSpending, 1000, 1e-9) {
		t.Errorf("original total mutated to %f", original[0].TotalSpending)
	}
	if !approxEqual(original[0].Breakdown[0].Bills[0].Amount, 150, 1e-9) {
		t.Errorf("original bill mutated to %f", original[0].Breakdown[0].Bills[0].Amount)
	}
}

func TestApplyHeadroom_ZeroIsIdentity(t *testing.T) {
	original := samplePeriods(t)

	adjusted, err := ApplyHeadroom(original, 0)
	if err != nil {
		t.Fatalf("ApplyHeadroom: %v", err)
	}
	if !approxEqual(adjusted[0].TotalSpending, original[0].TotalSpending, 1e-9) {
		t.Errorf("zero headroom changed total: %f", adjusted[0].TotalSpending)
	}
}

func TestApplyHeadroom_RejectsOutOfRange(t *testing.T) {
	for _, pct := range []float64{-1, 100.5, 200} {
		if _, err := ApplyHeadroom(samplePeriods(t), pct); !errors.Is(err, ErrHeadroomRange) {
			t.Errorf("percent %f: err = %v, want ErrHeadroomRange", pct, err)
		}
	}
}
