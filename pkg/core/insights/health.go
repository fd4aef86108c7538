package insights

import (
	"fmt"

	"lightsignal/pkg/core/benchmark"
	"lightsignal/pkg/core/fin"
	"lightsignal/pkg/core/scenario"
	"lightsignal/pkg/core/scoring"
)

// CategoryScore is one health category with its drivers.
type CategoryScore struct {
	Category string           `json:"category"`
	Score    float64          `json:"score"`
	State    string           `json:"state"`
	Drivers  []scoring.Driver `json:"drivers"`
}

// Overview is the headline summary with a short trend.
type Overview struct {
	Summary string    `json:"summary"`
	Trend   []float64 `json:"trend"`
}

// Report is the full health-check output.
type Report struct {
	OverallHealth   float64          `json:"overall_health"`
	KPIs            KPIBlock         `json:"kpis"`
	Overview        Overview         `json:"overview"`
	Categories      []CategoryScore  `json:"categories"`
	Alerts          []HealthAlert    `json:"alerts"`
	Heatmap         []HeatmapCell    `json:"heatmap"`
	Recommendations []Recommendation `json:"recommendations"`
}

var healthOpportunity = scoring.GrowthFeatures{
	MarketSize:      200_000,
	PeerSuccess:     0.5,
	RequiredCapital: 40_000,
	EstROI:          0.2,
}

// HealthReport scores the company's overall health from the latest
// month. The four category sub-scores are normalized to [0,1] before
// the composite weighting.
func HealthReport(profile Profile, series []scenario.MonthlyRecord, peers benchmark.Source) Report {
	m := computeBase(profile, series)

	peerAnchor := peerRPE(peers, profile.NAICS, m.rpe)
	if peers == nil {
		peerAnchor = m.rpe * 0.95
	}
	efficiency := scoring.Efficiency(m.expenseRatio, m.marginFrac, m.rpe, peerAnchor)
	growthIndex := scoring.GrowthOpportunity(healthOpportunity)

	positiveMargin := m.marginFrac
	if positiveMargin < 0 {
		positiveMargin = 0
	}
	financial := fin.Clamp01((efficiency/100)*0.9 + positiveMargin*0.1)

	rpeAnchor := peerAnchor
	if rpeAnchor < 1 {
		rpeAnchor = 1
	}
	operational := fin.Clamp01((1-m.expenseRatio)*0.7 + (m.rpe/rpeAnchor)*0.3)

	customer := 0.7
	if profile.Demo() {
		customer = 0.8
	}
	risk := 0.35
	if m.marginFrac > 0.1 {
		risk = 0.2
	}

	overall := scoring.HealthComposite(financial, operational, customer, risk)

	categories := []CategoryScore{
		{
			Category: "Financial Health",
			Score:    fin.Round1(financial * 100),
			State:    string(scoring.MapState("financial", financial)),
			Drivers:  []scoring.Driver{{Label: "margin_pct", Value: fin.Round2(m.marginFrac * 100)}},
		},
		{
			Category: "Operational Health",
			Score:    fin.Round1(operational * 100),
			State:    string(scoring.MapState("operational", operational)),
			Drivers:  []scoring.Driver{{Label: "revenue_per_employee", Value: fin.Round2(m.rpe)}},
		},
		{
			Category: "Customer Health",
			Score:    fin.Round1(customer * 100),
			State:    string(scoring.MapState("customer", customer)),
			Drivers:  []scoring.Driver{{Label: "review_sentiment", Value: sentimentOrDefault(profile)}},
		},
		{
			Category: "Risk Health",
			Score:    fin.Round1((1 - risk) * 100),
			State:    string(scoring.MapState("risk", 1-risk)),
			Drivers:  []scoring.Driver{{Label: "margin_buffer", Value: fin.Round2(m.marginFrac * 100)}},
		},
	}

	var alerts []HealthAlert
	if m.marginFrac < 0.05 {
		alerts = append(alerts, HealthAlert{
			ID:          "low_margin",
			Title:       "Low net margin",
			Severity:    "high",
			Description: "Net margin below 5%",
			LinkedKPIs:  []string{"margin_pct"},
		})
	}
	if m.expenseRatio > 0.6 {
		alerts = append(alerts, HealthAlert{
			ID:          "high_opex",
			Title:       "High operating expense ratio",
			Severity:    "medium",
			Description: "OPEX is more than 60% of revenue",
			LinkedKPIs:  []string{"expense_ratio"},
		})
	}

	return Report{
		OverallHealth: overall,
		KPIs: KPIBlock{
			Revenue:            m.revenue,
			NetIncome:          m.netIncome,
			MarginPct:          fin.Round2(m.marginFrac * 100),
			ExpenseRatio:       fin.Round2(m.expenseRatio * 100),
			RevenuePerEmployee: fin.Round2(m.rpe),
		},
		Overview: Overview{
			Summary: fmt.Sprintf("Overall business health is %.1f", overall),
			Trend:   []float64{overall - 2, overall - 1, overall},
		},
		Categories:      categories,
		Alerts:          alerts,
		Heatmap:         departmentHeatmap(profile, efficiency, growthIndex),
		Recommendations: healthRecommendations(overall),
	}
}

func sentimentOrDefault(profile Profile) float64 {
	if profile.ReviewSentiment > 0 {
		return profile.ReviewSentiment
	}
	return 0.7
}

func healthRecommendations(overall float64) []Recommendation {
	if overall < 60 {
		return []Recommendation{{
			Title:          "Improve margins and reduce top-line cost drivers",
			Description:    "Audit largest 3 expense categories and negotiate vendor terms.",
			ExpectedImpact: "Increase margin by 3-6 pts",
			Confidence:     "medium",
			Timeframe:      "M",
			Lever:          Lever{Category: "costs", Key: "opex_delta_pct", Value: -5},
		}}
	}
	return []Recommendation{{
		Title:          "Scale high-margin services",
		Description:    "Prioritize sales initiatives for services with >40% gross margin.",
		ExpectedImpact: "Increase revenue by 5-10%",
		Confidence:     "medium",
		Timeframe:      "M",
		Lever:          Lever{Category: "revenue", Key: "service_mix_pct", Value: 5},
	}}
}
