package debt

import (
	"reflect"
	"testing"

	"lightsignal/pkg/core/fin"
)

func intPtr(i int) *int { return &i }

func TestRiskAlertRules(t *testing.T) {
	accounts := []Account{
		{AccountID: "a1", Name: "Bridge Loan", Type: TypeTermLoan, Balance: 50000, RatePct: 8.0, BalloonDue: intPtr(2)},
		{AccountID: "a2", Name: "Expansion Loan", Type: TypeTermLoan, Balance: 30000, RatePct: 7.0, BalloonDue: intPtr(8)},
		{AccountID: "a3", Name: "LOC", Type: TypeLineOfCredit, Balance: 9000, RatePct: 12.0, VariableRate: true, Limit: 10000},
		{AccountID: "a4", Name: "Old Card", Type: TypeCreditCard, Balance: 4000, RatePct: 27.0, Limit: 5000},
	}
	market := MarketRates{TermRefi: 7.0}
	util := Revolving(accounts).Utilization()

	alerts := RiskAlerts(accounts, market, fin.RatioValue(0.9), util)

	ids := make([]string, len(alerts))
	for i, a := range alerts {
		ids[i] = a.ID
	}
	// Per-account rules fire in input order, portfolio rules last.
	want := []string{"balloon_a1", "balloon_a2", "reset_a3", "rate_a4", "dscr_low", "util_high"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("alert order: got %v, want %v", ids, want)
	}

	if alerts[0].Severity != SeverityCritical {
		t.Error("balloon within 3 months should be critical")
	}
	if alerts[1].Severity != SeverityWarning {
		t.Error("balloon within 9 months should be warning")
	}
	if alerts[3].Severity != SeverityInfo {
		t.Error("rate over market +5pts should be info")
	}
	if alerts[4].Severity != SeverityCritical {
		t.Error("DSCR below 1.0 should be critical")
	}
}

func TestRiskAlertDSCRWarning(t *testing.T) {
	alerts := RiskAlerts(nil, MarketRates{}, fin.RatioValue(1.1), fin.UndefinedRatio())
	if len(alerts) != 1 || alerts[0].ID != "dscr_warn" || alerts[0].Severity != SeverityWarning {
		t.Errorf("expected single dscr_warn, got %+v", alerts)
	}
}

func TestRiskAlertUndefinedRatiosFireNothing(t *testing.T) {
	// Undefined DSCR (no debt service) must not trip the DSCR rules.
	alerts := RiskAlerts(nil, MarketRates{}, fin.UndefinedRatio(), fin.UndefinedRatio())
	if len(alerts) != 0 {
		t.Errorf("expected no alerts, got %+v", alerts)
	}
}

func TestRiskAlertsDeterministic(t *testing.T) {
	accounts := testAccounts()
	util := Revolving(accounts).Utilization()
	a := RiskAlerts(accounts, MarketRates{TermRefi: 7.0}, fin.RatioValue(1.5), util)
	b := RiskAlerts(accounts, MarketRates{TermRefi: 7.0}, fin.RatioValue(1.5), util)
	if !reflect.DeepEqual(a, b) {
		t.Error("alerts not deterministic for identical input")
	}
}
