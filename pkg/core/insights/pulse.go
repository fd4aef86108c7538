package insights

import (
	"lightsignal/pkg/core/benchmark"
	"lightsignal/pkg/core/fin"
	"lightsignal/pkg/core/scenario"
	"lightsignal/pkg/core/scoring"
)

// KPIBlock is the headline figure set for the pulse view.
type KPIBlock struct {
	Revenue            float64 `json:"revenue"`
	NetIncome          float64 `json:"net_income"`
	MarginPct          float64 `json:"margin_pct"`
	ExpenseRatio       float64 `json:"expense_ratio"`
	RevenuePerEmployee float64 `json:"revenue_per_employee"`
}

// Analysis is the month-over-month internal read.
type Analysis struct {
	RevenueMoM   float64  `json:"revenue_mom"`
	ExpenseRatio float64  `json:"expense_ratio"`
	MarginPct    float64  `json:"margin_pct"`
	Explanation  []string `json:"explanation"`
}

// Pulse is the business-pulse output block.
type Pulse struct {
	KPIs             KPIBlock                  `json:"kpis"`
	EfficiencyScore  float64                   `json:"efficiency_score"`
	GrowthIndex      float64                   `json:"growth_index"`
	Heatmap          []HeatmapCell             `json:"heatmap"`
	InternalAnalysis Analysis                  `json:"internal_analysis"`
	Peers            []benchmark.PeerBenchmark `json:"peers,omitempty"`
	Recommendations  []Recommendation          `json:"recommendations"`
}

// baseMetrics are the latest-month figures both engines start from.
type baseMetrics struct {
	revenue      float64
	netIncome    float64
	marginFrac   float64
	expenseRatio float64
	rpe          float64
	revenueMoM   float64
	runwayMonths float64
}

func computeBase(profile Profile, series []scenario.MonthlyRecord) baseMetrics {
	var latest, prev scenario.MonthlyRecord
	if len(series) > 0 {
		latest = series[len(series)-1]
		prev = latest
		if len(series) > 1 {
			prev = series[len(series)-2]
		}
	}

	m := baseMetrics{revenue: latest.Revenue}
	m.netIncome = latest.Revenue - latest.COGS - latest.Opex
	if latest.Revenue > 0 {
		m.marginFrac = m.netIncome / latest.Revenue
		m.expenseRatio = latest.Opex / latest.Revenue
	}

	employees := profile.Employees
	if employees < 1 {
		employees = 1
	}
	m.rpe = latest.Revenue / float64(employees)
	m.revenueMoM = fin.GrowthRate(latest.Revenue, prev.Revenue)

	burn := latest.COGS + latest.Opex - latest.Revenue
	m.runwayMonths = fin.NewRunway(latest.Cash, burn).Months
	return m
}

// peerRPE resolves the peer revenue-per-employee anchor. Without a
// benchmark source the company's own figure discounted 10% stands in.
func peerRPE(src benchmark.Source, naics string, ownRPE float64) float64 {
	if src != nil {
		if stats, ok := src.PeerStats(naics); ok && stats.RPEMedian > 0 {
			return stats.RPEMedian
		}
	}
	return ownRPE * 0.9
}

// Demo growth-opportunity features until an opportunity pipeline
// feeds real ones.
var pulseOpportunity = scoring.GrowthFeatures{
	MarketSize:      500_000,
	PeerSuccess:     0.6,
	RequiredCapital: 50_000,
	EstROI:          0.25,
}

// PulseInsights computes the current business pulse. peers is optional;
// nil skips the peer comparison block.
func PulseInsights(profile Profile, series []scenario.MonthlyRecord, peers benchmark.Source) Pulse {
	m := computeBase(profile, series)

	efficiency := scoring.Efficiency(m.expenseRatio, m.marginFrac, m.rpe, peerRPE(peers, profile.NAICS, m.rpe))
	growthIndex := scoring.GrowthOpportunity(pulseOpportunity)

	analysis := Analysis{
		RevenueMoM:   fin.Round2(m.revenueMoM * 100),
		ExpenseRatio: fin.Round2(m.expenseRatio * 100),
		MarginPct:    fin.Round2(m.marginFrac * 100),
	}
	if m.revenueMoM > 0.05 {
		analysis.Explanation = append(analysis.Explanation,
			"Revenue accelerating vs prior period; consider scaling capacity.")
	} else if m.revenueMoM < -0.05 {
		analysis.Explanation = append(analysis.Explanation,
			"Revenue declining; investigate demand drivers and collections.")
	}

	p := Pulse{
		KPIs: KPIBlock{
			Revenue:            m.revenue,
			NetIncome:          m.netIncome,
			MarginPct:          fin.Round2(m.marginFrac * 100),
			ExpenseRatio:       fin.Round2(m.expenseRatio * 100),
			RevenuePerEmployee: fin.Round2(m.rpe),
		},
		EfficiencyScore:  efficiency,
		GrowthIndex:      growthIndex,
		Heatmap:          departmentHeatmap(profile, efficiency, growthIndex),
		InternalAnalysis: analysis,
		Recommendations:  pulseRecommendations(efficiency),
	}
	if peers != nil {
		p.Peers = benchmark.Compare(peers, profile.NAICS, fin.Round2(m.marginFrac*100), m.runwayMonths)
	}
	return p
}

// departmentHeatmap maps each department to a state. Operations track
// the efficiency score, sales and marketing the growth index, and
// finance the AR aging directly.
func departmentHeatmap(profile Profile, efficiency, growthIndex float64) []HeatmapCell {
	cells := make([]HeatmapCell, 0, 4)
	for _, dept := range []string{"sales", "operations", "finance", "marketing"} {
		if dept == "finance" {
			ar := profile.ARDays
			if ar == 0 {
				ar = 35
			}
			cells = append(cells, HeatmapCell{
				Department: dept,
				Metric:     "ar_days",
				State:      string(scoring.MapState("ar_days", ar)),
			})
			continue
		}
		score := growthIndex / 100
		if dept == "operations" {
			score = efficiency / 100
		}
		cells = append(cells, HeatmapCell{
			Department: dept,
			Metric:     "composite",
			State:      string(scoring.MapState(dept, score)),
		})
	}
	return cells
}

func pulseRecommendations(efficiency float64) []Recommendation {
	if efficiency < 60 {
		return []Recommendation{{
			Title:          "Reduce operating expenses",
			Description:    "Target top 3 vendors for cost renegotiation.",
			ExpectedImpact: "Improve margin by 3-7 pts",
			Confidence:     "medium",
			Timeframe:      "M",
			Lever:          Lever{Category: "costs", Key: "opex_delta_pct", Value: -5},
		}}
	}
	return []Recommendation{{
		Title:          "Invest in growth marketing",
		Description:    "Allocate incremental spend to proven channels to capture market opportunity.",
		ExpectedImpact: "Increase revenue by 5-12%",
		Confidence:     "medium",
		Timeframe:      "M",
		Lever:          Lever{Category: "revenue_demand", Key: "marketing_delta_pct", Value: 5},
	}}
}
