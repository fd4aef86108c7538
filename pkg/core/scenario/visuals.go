package scenario

import "lightsignal/pkg/core/fin"

// buildVisuals emits the three dashboard series: a month-by-month cash
// projection (linear extrapolation of scenario net income), a two-point
// revenue comparison, and a profit waterfall of signed steps from base
// revenue down to scenario net income.
func buildVisuals(proj *Projection, latest MonthlyRecord, inputs Inputs, monthlyInterest float64, horizonMonths int) []Chart {
	cashPoints := make([]Point, 0, horizonMonths)
	cash := proj.ScenarioCash
	for month := 0; month < horizonMonths; month++ {
		cash += proj.Scenario.NetIncome
		cashPoints = append(cashPoints, Point{"month": month, "cash": fin.Round2(cash)})
	}

	waterfall := []Point{
		{"step": "Base Revenue", "value": fin.Round2(proj.Base.Revenue)},
		{"step": "Price Change", "value": fin.Round2(proj.KPIs.RevenueDelta)},
		{"step": "COGS", "value": fin.Round2(-latest.COGS)},
		{"step": "OPEX Change", "value": fin.Round2(-(proj.ScenarioOpex - latest.Opex))},
		{"step": "Interest", "value": fin.Round2(-monthlyInterest)},
		{"step": "Net Income", "value": fin.Round2(proj.Scenario.NetIncome)},
	}

	return []Chart{
		{Name: "Cash Flow Projection", Points: cashPoints},
		{Name: "Revenue Comparison", Points: []Point{
			{"category": "Base", "value": fin.Round2(proj.Base.Revenue)},
			{"category": "Scenario", "value": fin.Round2(proj.Scenario.Revenue)},
		}},
		{Name: "Profit Waterfall", Points: waterfall},
	}
}
