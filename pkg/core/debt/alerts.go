package debt

import (
	"fmt"

	"lightsignal/pkg/core/fin"
)

// Severity orders alert urgency.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Alert is one fired risk rule. IDs are derived from the rule and
// account so repeat evaluations produce identical alerts.
type Alert struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// MarketRates carries reference rates used by the alert and
// optimization rules. TermRefi is the going refinance rate.
type MarketRates struct {
	TermRefi float64 `json:"term_refi"`
	LOC      float64 `json:"loc"`
}

// marketSpreadPts flags accounts priced this many points over market.
const marketSpreadPts = 5.0

// RiskAlerts evaluates the rule set over the account list and portfolio
// ratios. Rules fire per account in input order (balloon, variable
// rate, rate-vs-market), then portfolio rules (DSCR, utilization), so
// output ordering is stable for a given input. Multiple rules may fire
// for the same account.
func RiskAlerts(accounts []Account, market MarketRates, dscr fin.Ratio, utilization fin.Ratio) []Alert {
	var alerts []Alert

	for _, a := range accounts {
		if a.BalloonDue != nil {
			switch due := *a.BalloonDue; {
			case due <= 3:
				alerts = append(alerts, Alert{
					ID:          fmt.Sprintf("balloon_%s", a.AccountID),
					Title:       "Balloon due soon",
					Severity:    SeverityCritical,
					Description: fmt.Sprintf("%s has balloon in %d months", a.Name, due),
				})
			case due <= 9:
				alerts = append(alerts, Alert{
					ID:          fmt.Sprintf("balloon_%s", a.AccountID),
					Title:       "Balloon due",
					Severity:    SeverityWarning,
					Description: fmt.Sprintf("%s has balloon in %d months", a.Name, due),
				})
			}
		}
		if a.VariableRate {
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("reset_%s", a.AccountID),
				Title:       "Variable rate reset approaching",
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("%s is variable rate", a.Name),
			})
		}
		if a.RatePct > market.TermRefi+marketSpreadPts {
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("rate_%s", a.AccountID),
				Title:       "High rate compared to market",
				Severity:    SeverityInfo,
				Description: fmt.Sprintf("%s rate %.1f%% vs market %.1f%%", a.Name, a.RatePct, market.TermRefi),
			})
		}
	}

	if v, ok := dscr.Float(); ok {
		switch {
		case v < 1.0:
			alerts = append(alerts, Alert{
				ID:          "dscr_low",
				Title:       "DSCR below 1.0",
				Severity:    SeverityCritical,
				Description: "Debt service exceeds operating cash flow",
			})
		case v < 1.25:
			alerts = append(alerts, Alert{
				ID:          "dscr_warn",
				Title:       "DSCR below 1.25",
				Severity:    SeverityWarning,
				Description: "Consider deleveraging",
			})
		}
	}

	if u, ok := utilization.Float(); ok && u >= 0.5 {
		alerts = append(alerts, Alert{
			ID:          "util_high",
			Title:       "High utilization",
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("Utilization at %.0f%%", u*100),
		})
	}

	return alerts
}
