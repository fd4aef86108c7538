package scenario

import (
	"errors"
	"math"

	"lightsignal/pkg/core/fin"
)

// CostPerHead is the calibrated fully-loaded monthly cost of one hire.
const CostPerHead = 6000.0

// ErrEmptyBaseline is returned when the baseline has no records.
// Input validation is the hosting layer's job; this is the one
// invariant the composer cannot proceed without.
var ErrEmptyBaseline = errors.New("baseline series is empty")

// revenueFloor guards margin denominators, matching the upstream
// convention of max(revenue, 1e-6).
const revenueFloor = 1e-6

// Project applies the scenario deltas to the latest baseline month and
// derives base/scenario KPI blocks, deltas, and chart series over
// horizonMonths.
func Project(baseline Baseline, inputs Inputs, horizonMonths int) (*Projection, error) {
	if len(baseline.Series) == 0 {
		return nil, ErrEmptyBaseline
	}
	for _, m := range baseline.Series {
		if m.Revenue < 0 || m.COGS < 0 || m.Opex < 0 {
			return nil, errors.New("baseline records must have non-negative revenue, cogs, and opex")
		}
	}
	if horizonMonths <= 0 {
		horizonMonths = 12
	}

	latest := baseline.Latest()

	baseCosts := latest.COGS + latest.Opex
	baseNet := latest.Revenue - baseCosts
	baseMargin := baseNet / math.Max(latest.Revenue, revenueFloor) * 100
	baseBurn := math.Max(baseCosts-latest.Revenue, 0.0)

	base := Block{
		Revenue:      latest.Revenue,
		NetIncome:    baseNet,
		MarginPct:    baseMargin,
		RunwayMonths: fin.NewRunway(latest.Cash, baseBurn),
	}

	// Scenario deltas: price on revenue, headcount on opex, loan
	// interest as a monthly charge, cash adjusted once by loan - capex.
	scenRevenue := latest.Revenue * (1 + inputs.PriceChangePct/100)
	scenOpex := latest.Opex + float64(inputs.HeadcountDelta)*CostPerHead

	monthlyInterest := 0.0
	if inputs.LoanAmount > 0 {
		monthlyInterest = inputs.LoanAmount * inputs.InterestRatePct / 12 / 100
	}

	scenCash := latest.Cash + inputs.LoanAmount - inputs.CapexAmount
	scenCosts := latest.COGS + scenOpex + monthlyInterest
	scenNet := scenRevenue - scenCosts
	scenMargin := scenNet / math.Max(scenRevenue, revenueFloor) * 100
	scenBurn := math.Max(scenCosts-scenRevenue, 0.0)

	scen := Block{
		Revenue:      scenRevenue,
		NetIncome:    scenNet,
		MarginPct:    scenMargin,
		RunwayMonths: fin.NewRunway(scenCash, scenBurn),
	}

	revenueDelta := scenRevenue - latest.Revenue
	kpis := KPIs{
		RevenueDelta:      revenueDelta,
		RevenueDeltaPct:   revenueDelta / math.Max(latest.Revenue, revenueFloor) * 100,
		NetIncomeDeltaPct: (scenNet - baseNet) / math.Max(math.Abs(baseNet), revenueFloor) * 100,
		MarginDeltaPts:    scenMargin - baseMargin,
		CashFlowDelta:     scenNet - baseNet,
		RunwayDeltaMonths: scen.RunwayMonths.Months - base.RunwayMonths.Months,
	}

	// ROI and payback exist only when capital is actually deployed.
	if inputs.CapexAmount > 0 {
		annualBenefit := (scenNet - baseNet) * 12
		roi := annualBenefit / inputs.CapexAmount * 100
		kpis.RoiPct = &roi
		if scenNet > baseNet {
			payback := inputs.CapexAmount / (scenNet - baseNet)
			kpis.PaybackMonths = &payback
		}
	}

	proj := &Projection{
		Base:         base,
		Scenario:     scen,
		KPIs:         kpis,
		BaseCOGS:     latest.COGS,
		BaseOpex:     latest.Opex,
		BaseCash:     latest.Cash,
		ScenarioOpex: scenOpex,
		ScenarioCash: scenCash,
	}
	proj.Visuals = buildVisuals(proj, latest, inputs, monthlyInterest, horizonMonths)
	return proj, nil
}
