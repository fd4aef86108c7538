package insights

import (
	"fmt"

	"lightsignal/pkg/core/scenario"
	"lightsignal/pkg/core/stress"
)

// Recommendations derives advisory text from scenario deltas and
// stress outcomes. Rules fire independently; when nothing fires a
// neutral fallback is returned so the list is never empty.
func Recommendations(kpis scenario.KPIs, stressTests []stress.Result) []string {
	var recs []string

	if kpis.RevenueDeltaPct > 5 {
		recs = append(recs, fmt.Sprintf(
			"Revenue increase of %.1f%% ($%.0f) is projected. Consider scaling operations to capture this growth.",
			kpis.RevenueDeltaPct, kpis.RevenueDelta))
	} else if kpis.RevenueDeltaPct < -5 {
		recs = append(recs, fmt.Sprintf(
			"Revenue decline of %.1f%% projected. Review cost reduction strategies to maintain profitability.",
			-kpis.RevenueDeltaPct))
	}

	if kpis.MarginDeltaPts > 2 {
		recs = append(recs, fmt.Sprintf(
			"Margin improvement of %.1f percentage points expected. This efficiency gain strengthens your competitive position.",
			kpis.MarginDeltaPts))
	} else if kpis.MarginDeltaPts < -2 {
		recs = append(recs, fmt.Sprintf(
			"Margin compression of %.1f points. Consider price increases or operational efficiency improvements.",
			-kpis.MarginDeltaPts))
	}

	if kpis.RunwayDeltaMonths < -2 {
		recs = append(recs, fmt.Sprintf(
			"Cash runway decreases by %.1f months. Ensure adequate cash reserves or consider delayed implementation.",
			-kpis.RunwayDeltaMonths))
	} else if kpis.RunwayDeltaMonths > 2 {
		recs = append(recs, fmt.Sprintf(
			"Cash position improves by %.1f months of runway. Strong financial flexibility for future investments.",
			kpis.RunwayDeltaMonths))
	}

	if kpis.RoiPct != nil && *kpis.RoiPct > 15 {
		recs = append(recs, fmt.Sprintf(
			"Expected ROI of %.1f%% exceeds typical project threshold. Strong financial case for proceeding.",
			*kpis.RoiPct))
	}

	for _, test := range stressTests {
		if dscr, ok := test.DSCR.Float(); ok && dscr < 1.25 {
			recs = append(recs, fmt.Sprintf(
				"Warning: %s results in DSCR of %.2f, close to covenant limits. Build cash buffer before proceeding.",
				test.ScenarioName, dscr))
		}
	}

	if len(recs) == 0 {
		recs = []string{"Scenario impact is minimal. Consider whether this change aligns with strategic priorities."}
	}
	return recs
}

// Risks derives warning text from the projected scenario state.
func Risks(scen scenario.Block, kpis scenario.KPIs, stressTests []stress.Result) []string {
	var risks []string

	if !scen.RunwayMonths.Unbounded {
		if scen.RunwayMonths.Months < 3 {
			risks = append(risks, fmt.Sprintf(
				"Critical: Cash runway drops to %.1f months. Immediate liquidity risk.",
				scen.RunwayMonths.Months))
		} else if scen.RunwayMonths.Months < 6 {
			risks = append(risks, fmt.Sprintf(
				"Caution: Cash runway of %.1f months. Monitor cash flow closely.",
				scen.RunwayMonths.Months))
		}
	}

	if scen.MarginPct < 10 {
		risks = append(risks, fmt.Sprintf(
			"Margin falls to %.1f%%, below healthy threshold. Review pricing and cost structure.",
			scen.MarginPct))
	}

	for _, test := range stressTests {
		if test.CashImpact < -50000 {
			risks = append(risks, fmt.Sprintf(
				"%s could drain $%.0f in cash. Maintain emergency reserves.",
				test.ScenarioName, -test.CashImpact))
		}
	}

	if kpis.RevenueDeltaPct > 20 {
		risks = append(risks, "Large revenue dependency on this scenario. Diversification recommended.")
	}

	if len(risks) == 0 {
		risks = []string{"No significant risks identified."}
	}
	return risks
}
