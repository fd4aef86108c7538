// Package stress applies fixed, named shocks to a scenario's revenue
// and cost base. Unlike the Monte Carlo simulator these are fully
// deterministic: identical inputs yield bit-identical results.
package stress

import "lightsignal/pkg/core/fin"

// assumedMonthlyServiceRate approximates monthly debt service as 1% of
// outstanding debt when no account-level detail is available.
const assumedMonthlyServiceRate = 0.01

// Result is one shock outcome. DSCR and ICR are Undefined when debt is
// absent or the shock does not touch interest.
type Result struct {
	ScenarioName     string    `json:"scenario_name"`
	RevenueImpactPct float64   `json:"revenue_impact_pct"`
	CostImpactPct    float64   `json:"cost_impact_pct"`
	CashImpact       float64   `json:"cash_impact"`
	DSCR             fin.Ratio `json:"dscr"`
	ICR              fin.Ratio `json:"icr"`
}

// Run evaluates the three standard shocks against the given base.
// debt is total outstanding principal; the rate shock only applies
// when it is positive.
func Run(baseRevenue, baseCOGS, baseOpex, baseCash, debt float64) []Result {
	results := make([]Result, 0, 3)

	// Shock 1: revenue -15%, costs +10%.
	revStress := baseRevenue * 0.85
	costStress := (baseCOGS + baseOpex) * 1.10
	netStress := revStress - costStress

	dscr := fin.UndefinedRatio()
	if debt > 0 {
		dscr = fin.RatioOf(netStress, debt*assumedMonthlyServiceRate)
	}
	results = append(results, Result{
		ScenarioName:     "Revenue -15%, Costs +10%",
		RevenueImpactPct: -15.0,
		CostImpactPct:    10.0,
		CashImpact:       netStress,
		DSCR:             dscr,
	})

	// Shock 2: interest rate +2 points, only meaningful with debt.
	if debt > 0 {
		additionalInterest := debt * 0.02 / 12
		results = append(results, Result{
			ScenarioName:     "Interest Rate +2 pts",
			RevenueImpactPct: 0.0,
			CostImpactPct:    0.0,
			CashImpact:       -additionalInterest,
			ICR:              fin.RatioOf(baseRevenue, additionalInterest),
		})
	}

	// Shock 3: 30-day supply disruption, revenue x0.70, costs unchanged.
	results = append(results, Result{
		ScenarioName:     "Supply Disruption 30 Days",
		RevenueImpactPct: -30.0,
		CostImpactPct:    0.0,
		CashImpact:       baseRevenue*0.70 - baseCOGS - baseOpex,
	})

	return results
}
