package insights

import (
	"context"
	"math"
	"strings"
	"testing"

	"lightsignal/pkg/core/agent"
	"lightsignal/pkg/core/fin"
	"lightsignal/pkg/core/llm"
	"lightsignal/pkg/core/prompt"
	"lightsignal/pkg/core/scenario"
	"lightsignal/pkg/core/stress"
)

func demoProfile() Profile {
	return Profile{
		CompanyID: "demo-hvac-001",
		Name:      "Demo HVAC Co.",
		NAICS:     "238220",
		Region:    "FL",
		Employees: 18,
		ARDays:    30,
		Mode:      "demo",
	}
}

func demoSeries() []scenario.MonthlyRecord {
	return []scenario.MonthlyRecord{
		{Month: "2025-05", Revenue: 230000, COGS: 138000, Opex: 60000, Cash: 315000},
		{Month: "2025-06", Revenue: 235000, COGS: 141000, Opex: 60500, Cash: 320000},
	}
}

func TestRecommendationsRules(t *testing.T) {
	kpis := scenario.KPIs{RevenueDeltaPct: 10, RevenueDelta: 3150}
	recs := Recommendations(kpis, nil)
	if len(recs) != 1 || !strings.Contains(recs[0], "Revenue increase of 10.0%") {
		t.Errorf("revenue rule missing: %v", recs)
	}

	// A stressed DSCR below 1.25 adds a covenant warning.
	dscr := stress.Result{ScenarioName: "Revenue -15%, Costs +10%", DSCR: fin.RatioValue(1.1)}
	recs = Recommendations(scenario.KPIs{}, []stress.Result{dscr})
	if len(recs) != 1 || !strings.Contains(recs[0], "DSCR of 1.10") {
		t.Errorf("dscr rule missing: %v", recs)
	}

	// Nothing fires: fallback message.
	recs = Recommendations(scenario.KPIs{}, nil)
	if len(recs) != 1 || !strings.Contains(recs[0], "Scenario impact is minimal") {
		t.Errorf("expected fallback, got %v", recs)
	}
}

func TestRecommendationsROI(t *testing.T) {
	roi := 22.5
	recs := Recommendations(scenario.KPIs{RoiPct: &roi}, nil)
	if len(recs) != 1 || !strings.Contains(recs[0], "ROI of 22.5%") {
		t.Errorf("roi rule missing: %v", recs)
	}
}

func TestRisksRules(t *testing.T) {
	// Runway 2.5 months is critical, margin 8% breaches threshold.
	scen := scenario.Block{MarginPct: 8, RunwayMonths: fin.Runway{Months: 2.5}}
	risks := Risks(scen, scenario.KPIs{}, nil)
	if len(risks) != 2 {
		t.Fatalf("expected 2 risks, got %v", risks)
	}
	if !strings.Contains(risks[0], "Critical") || !strings.Contains(risks[1], "below healthy threshold") {
		t.Errorf("wrong risks: %v", risks)
	}

	// Unbounded runway never trips the liquidity rule.
	scen = scenario.Block{MarginPct: 20, RunwayMonths: fin.Runway{Months: fin.UnboundedRunwayMonths, Unbounded: true}}
	risks = Risks(scen, scenario.KPIs{}, nil)
	if len(risks) != 1 || risks[0] != "No significant risks identified." {
		t.Errorf("expected no-risk fallback, got %v", risks)
	}

	// Big stress drain and outsized revenue dependency.
	drain := stress.Result{ScenarioName: "Supply Disruption 30 Days", CashImpact: -60000}
	risks = Risks(scenario.Block{MarginPct: 20, RunwayMonths: fin.Runway{Months: 12}},
		scenario.KPIs{RevenueDeltaPct: 25}, []stress.Result{drain})
	if len(risks) != 2 {
		t.Fatalf("expected 2 risks, got %v", risks)
	}
	if !strings.Contains(risks[0], "could drain $60000") {
		t.Errorf("stress drain risk wrong: %v", risks)
	}
}

func TestPulseInsights(t *testing.T) {
	p := PulseInsights(demoProfile(), demoSeries(), nil)

	// Latest month: net = 235000 - 141000 - 60500 = 33500,
	// margin = 33500/235000 ≈ 14.26%, expense ratio ≈ 25.74%.
	if p.KPIs.NetIncome != 33500 {
		t.Errorf("net income expected 33500, got %f", p.KPIs.NetIncome)
	}
	if math.Abs(p.KPIs.MarginPct-14.26) > 0.01 {
		t.Errorf("margin expected ≈14.26, got %f", p.KPIs.MarginPct)
	}

	// Efficiency: 0.4*(1-0.2574) + 0.4*0.1426 + 0.2*1 ≈ 0.554 → 55.4.
	if math.Abs(p.EfficiencyScore-55.4) > 0.1 {
		t.Errorf("efficiency expected ≈55.4, got %f", p.EfficiencyScore)
	}

	// Efficiency below 60 routes to the cost recommendation.
	if len(p.Recommendations) != 1 || p.Recommendations[0].Lever.Key != "opex_delta_pct" {
		t.Errorf("expected cost recommendation, got %+v", p.Recommendations)
	}

	if len(p.Heatmap) != 4 {
		t.Fatalf("expected 4 heatmap cells, got %d", len(p.Heatmap))
	}
	for _, cell := range p.Heatmap {
		if cell.Department == "finance" {
			if cell.Metric != "ar_days" || cell.State != "good" {
				t.Errorf("finance cell wrong: %+v", cell)
			}
		}
	}

	if p.Peers != nil {
		t.Error("peers must be omitted without a source")
	}
}

func TestPulseMoMExplanation(t *testing.T) {
	series := []scenario.MonthlyRecord{
		{Month: "2025-05", Revenue: 200000, COGS: 120000, Opex: 55000, Cash: 300000},
		{Month: "2025-06", Revenue: 220000, COGS: 132000, Opex: 56000, Cash: 320000},
	}
	p := PulseInsights(demoProfile(), series, nil)
	if len(p.InternalAnalysis.Explanation) != 1 || !strings.Contains(p.InternalAnalysis.Explanation[0], "accelerating") {
		t.Errorf("10%% MoM growth should explain acceleration: %+v", p.InternalAnalysis)
	}
}

func TestHealthReport(t *testing.T) {
	r := HealthReport(demoProfile(), demoSeries(), nil)

	// financial = 0.554*0.9 + 0.1426*0.1 ≈ 0.513
	// operational = 0.7426*0.7 + (1/0.95)*0.3 ≈ 0.836
	// customer = 0.8 (demo), risk = 0.2 (margin > 10%)
	// overall = 0.4*0.513 + 0.25*0.836 + 0.2*0.8 + 0.15*0.8 ≈ 69.4
	if math.Abs(r.OverallHealth-69.4) > 0.2 {
		t.Errorf("overall health expected ≈69.4, got %f", r.OverallHealth)
	}

	if len(r.Categories) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(r.Categories))
	}
	if r.Categories[0].Category != "Financial Health" || math.Abs(r.Categories[0].Score-51.3) > 0.2 {
		t.Errorf("financial category wrong: %+v", r.Categories[0])
	}

	// Healthy margin and opex: no alerts, growth recommendation.
	if len(r.Alerts) != 0 {
		t.Errorf("expected no alerts, got %+v", r.Alerts)
	}
	if len(r.Recommendations) != 1 || r.Recommendations[0].Lever.Key != "service_mix_pct" {
		t.Errorf("expected growth recommendation, got %+v", r.Recommendations)
	}

	if len(r.Overview.Trend) != 3 || r.Overview.Trend[2] != r.OverallHealth {
		t.Errorf("trend must end at the overall score: %+v", r.Overview)
	}
}

func TestHealthReportAlerts(t *testing.T) {
	series := []scenario.MonthlyRecord{
		// margin = (100000-60000-65000)/100000 = -25%, opex ratio 65%.
		{Month: "2025-06", Revenue: 100000, COGS: 60000, Opex: 65000, Cash: 50000},
	}
	r := HealthReport(demoProfile(), series, nil)
	if len(r.Alerts) != 2 {
		t.Fatalf("expected low_margin and high_opex alerts, got %+v", r.Alerts)
	}
	if r.Alerts[0].ID != "low_margin" || r.Alerts[0].Severity != "high" {
		t.Errorf("low_margin alert wrong: %+v", r.Alerts[0])
	}
	if r.Alerts[1].ID != "high_opex" || r.Alerts[1].Severity != "medium" {
		t.Errorf("high_opex alert wrong: %+v", r.Alerts[1])
	}
}

func TestNarratorDegradesWithoutProvider(t *testing.T) {
	if err := prompt.RegisterDefaults(); err != nil {
		t.Fatalf("failed to register prompts: %v", err)
	}

	// The stub provider has no canned response, so narration errors and
	// callers keep their rule-based text.
	mgr := agent.NewManager(agent.Config{ActiveProvider: "stub"})
	n := NewNarrator(mgr)

	_, err := n.HealthNarrative(context.Background(), Report{})
	if err == nil {
		t.Error("expected error from stub provider without response")
	}

	var nilNarrator *Narrator
	if _, err := nilNarrator.HealthNarrative(context.Background(), Report{}); err == nil {
		t.Error("nil narrator must error, not panic")
	}
}

func TestCoachParsesFencedReply(t *testing.T) {
	if err := prompt.RegisterDefaults(); err != nil {
		t.Fatalf("failed to register prompts: %v", err)
	}

	// Models wrap JSON in code fences; the coach must still parse it.
	mgr := agent.NewManager(agent.Config{ActiveProvider: "stub"})
	mgr.RegisterProvider("stub", &llm.StubProvider{
		Response: "```json\n{\"answer\": \"Margins are healthy at 14.3%.\", \"suggested_levers\": [{\"category\": \"costs\", \"key\": \"opex_delta_pct\", \"value\": -5}]}\n```",
	})
	n := NewNarrator(mgr)

	ans, err := n.Coach(context.Background(), "How are my margins?", Report{})
	if err != nil {
		t.Fatalf("coach failed: %v", err)
	}
	if !strings.Contains(ans.Answer, "14.3%") {
		t.Errorf("answer not carried through: %q", ans.Answer)
	}
	if len(ans.SuggestedLevers) != 1 || ans.SuggestedLevers[0].Key != "opex_delta_pct" {
		t.Errorf("levers not parsed: %+v", ans.SuggestedLevers)
	}
}

func TestCoachRejectsNonJSONReply(t *testing.T) {
	if err := prompt.RegisterDefaults(); err != nil {
		t.Fatalf("failed to register prompts: %v", err)
	}

	mgr := agent.NewManager(agent.Config{ActiveProvider: "stub"})
	mgr.RegisterProvider("stub", &llm.StubProvider{Response: "{\"no_answer_field\": true}"})
	n := NewNarrator(mgr)

	if _, err := n.Coach(context.Background(), "Anything?", Report{}); err == nil {
		t.Error("reply without an answer field must error")
	}
}
