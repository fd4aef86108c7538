package scenario

import (
	"math"
	"testing"
)

func demoBaseline() Baseline {
	return Baseline{Series: []MonthlyRecord{
		{Month: "2025-05", Revenue: 29000, COGS: 13000, Opex: 13800, Cash: 78000},
		{Month: "2025-06", Revenue: 30000, COGS: 13500, Opex: 14000, Cash: 80000},
	}}
}

func TestProjectPriceChangeExample(t *testing.T) {
	// Worked example: +5% price on {30000, 13500, 14000, 80000}.
	proj, err := Project(demoBaseline(), Inputs{PriceChangePct: 5}, 12)
	if err != nil {
		t.Fatal(err)
	}

	if proj.Scenario.Revenue != 31500 {
		t.Errorf("scenario revenue expected 31500, got %f", proj.Scenario.Revenue)
	}
	// 31500 - 13500 - 14000 = 4000
	if math.Abs(proj.Scenario.NetIncome-4000) > 0.01 {
		t.Errorf("scenario net income expected 4000, got %f", proj.Scenario.NetIncome)
	}
	// 4000 / 31500 ≈ 12.7%
	if math.Abs(proj.Scenario.MarginPct-12.698) > 0.01 {
		t.Errorf("scenario margin expected ≈12.7, got %f", proj.Scenario.MarginPct)
	}
	if proj.Base.NetIncome != 2500 {
		t.Errorf("base net income expected 2500, got %f", proj.Base.NetIncome)
	}
	if math.Abs(proj.KPIs.RevenueDeltaPct-5.0) > 0.001 {
		t.Errorf("revenue delta expected 5.0%%, got %f", proj.KPIs.RevenueDeltaPct)
	}
}

func TestProjectRunwaySentinel(t *testing.T) {
	// Profitable base month: runway must be the unbounded sentinel,
	// never a computed division.
	proj, err := Project(demoBaseline(), Inputs{}, 12)
	if err != nil {
		t.Fatal(err)
	}
	if !proj.Base.RunwayMonths.Unbounded || proj.Base.RunwayMonths.Months != 999 {
		t.Errorf("expected unbounded base runway, got %+v", proj.Base.RunwayMonths)
	}
}

func TestProjectBurnAndRunway(t *testing.T) {
	baseline := Baseline{Series: []MonthlyRecord{
		{Month: "2025-06", Revenue: 20000, COGS: 13500, Opex: 14000, Cash: 75000},
	}}
	proj, err := Project(baseline, Inputs{}, 12)
	if err != nil {
		t.Fatal(err)
	}
	// burn = 13500 + 14000 - 20000 = 7500; runway = 75000/7500 = 10
	if proj.Base.RunwayMonths.Unbounded {
		t.Fatal("expected bounded runway")
	}
	if math.Abs(proj.Base.RunwayMonths.Months-10) > 0.001 {
		t.Errorf("runway expected 10, got %f", proj.Base.RunwayMonths.Months)
	}
}

func TestProjectHeadcountAndLoan(t *testing.T) {
	proj, err := Project(demoBaseline(), Inputs{
		HeadcountDelta:  2,
		LoanAmount:      60000,
		InterestRatePct: 8,
	}, 12)
	if err != nil {
		t.Fatal(err)
	}
	// opex 14000 + 2*6000 = 26000
	if proj.ScenarioOpex != 26000 {
		t.Errorf("scenario opex expected 26000, got %f", proj.ScenarioOpex)
	}
	// interest = 60000 * 8 / 12 / 100 = 400
	// net = 30000 - 13500 - 26000 - 400 = -9900
	if math.Abs(proj.Scenario.NetIncome-(-9900)) > 0.01 {
		t.Errorf("scenario net income expected -9900, got %f", proj.Scenario.NetIncome)
	}
	// cash adjusted once by +loan
	if proj.ScenarioCash != 140000 {
		t.Errorf("scenario cash expected 140000, got %f", proj.ScenarioCash)
	}
}

func TestProjectROIOnlyWithCapex(t *testing.T) {
	proj, err := Project(demoBaseline(), Inputs{PriceChangePct: 5}, 12)
	if err != nil {
		t.Fatal(err)
	}
	if proj.KPIs.RoiPct != nil || proj.KPIs.PaybackMonths != nil {
		t.Error("ROI and payback must be absent without capex")
	}

	proj, err = Project(demoBaseline(), Inputs{PriceChangePct: 5, CapexAmount: 9000}, 12)
	if err != nil {
		t.Fatal(err)
	}
	if proj.KPIs.RoiPct == nil {
		t.Fatal("ROI expected with capex")
	}
	// benefit = (4000-2500)*12 = 18000; roi = 18000/9000*100 = 200
	if math.Abs(*proj.KPIs.RoiPct-200) > 0.01 {
		t.Errorf("ROI expected 200, got %f", *proj.KPIs.RoiPct)
	}
	// payback = 9000 / 1500 = 6 months
	if proj.KPIs.PaybackMonths == nil || math.Abs(*proj.KPIs.PaybackMonths-6) > 0.01 {
		t.Errorf("payback expected 6 months, got %v", proj.KPIs.PaybackMonths)
	}
}

func TestProjectPaybackAbsentWhenNoImprovement(t *testing.T) {
	// Capex with no operating change: ROI is defined (negative-or-zero
	// benefit annualized), payback is not.
	proj, err := Project(demoBaseline(), Inputs{CapexAmount: 9000}, 12)
	if err != nil {
		t.Fatal(err)
	}
	if proj.KPIs.RoiPct == nil {
		t.Error("ROI should be defined when capex > 0")
	}
	if proj.KPIs.PaybackMonths != nil {
		t.Error("payback must be absent when net income does not improve")
	}
}

func TestProjectVisuals(t *testing.T) {
	proj, err := Project(demoBaseline(), Inputs{PriceChangePct: 5}, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(proj.Visuals) != 3 {
		t.Fatalf("expected 3 charts, got %d", len(proj.Visuals))
	}
	cash := proj.Visuals[0]
	if cash.Name != "Cash Flow Projection" || len(cash.Points) != 6 {
		t.Errorf("cash chart wrong: %s with %d points", cash.Name, len(cash.Points))
	}
	// First point: 80000 + 4000 = 84000.
	if cash.Points[0]["cash"] != 84000.0 {
		t.Errorf("first cash point expected 84000, got %v", cash.Points[0]["cash"])
	}

	wf := proj.Visuals[2]
	if wf.Name != "Profit Waterfall" || len(wf.Points) != 6 {
		t.Fatalf("waterfall wrong: %+v", wf)
	}
	if wf.Points[0]["step"] != "Base Revenue" || wf.Points[5]["step"] != "Net Income" {
		t.Error("waterfall step order wrong")
	}
}

func TestProjectEmptyBaseline(t *testing.T) {
	if _, err := Project(Baseline{}, Inputs{}, 12); err != ErrEmptyBaseline {
		t.Errorf("expected ErrEmptyBaseline, got %v", err)
	}
}

func TestProjectRejectsNegativeBaseline(t *testing.T) {
	baseline := Baseline{Series: []MonthlyRecord{
		{Month: "2025-06", Revenue: -1, COGS: 0, Opex: 0, Cash: 0},
	}}
	if _, err := Project(baseline, Inputs{}, 12); err == nil {
		t.Error("negative revenue should be rejected")
	}
}
