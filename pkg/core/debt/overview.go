package debt

import (
	"fmt"

	"lightsignal/pkg/core/fin"
)

// refiFeePct is the assumed origination fee on the refinance scan.
const refiFeePct = 0.5

// defaultTermMonths stands in when an account is missing its term.
const defaultTermMonths = 36

// PortfolioKPIs are the headline numbers of the debt dashboard.
type PortfolioKPIs struct {
	WeightedAvgRatePct float64   `json:"weighted_avg_rate_pct"`
	TotalBalance       float64   `json:"total_balance"`
	MonthlyPayments    float64   `json:"monthly_payments"`
	DTI                fin.Ratio `json:"dti"`
	DSCR               fin.Ratio `json:"dscr"`
	UtilizationPct     fin.Ratio `json:"utilization_pct"`
}

// Option is one suggested optimization (currently refinance scans).
type Option struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Description      string  `json:"description"`
	EstSavingsAnnual float64 `json:"est_savings_annual"`
	EstFee           float64 `json:"est_fee"`
	Confidence       string  `json:"confidence"`
}

// Overview is the full debt analysis block.
type Overview struct {
	KPIs       PortfolioKPIs   `json:"kpis"`
	Revolving  RevolvingTotals `json:"revolving"`
	Options    []Option        `json:"optimization"`
	Comparison Comparison      `json:"avalanche_vs_snowball"`
	Alerts     []Alert         `json:"alerts"`
}

// BuildOverview composes portfolio KPIs, a refinance option scan over
// term-style loans, the payoff strategy comparison, and risk alerts.
// operatingCashFlow and monthlyNetIncome come from the caller's
// financial baseline; the account list is read-only.
func BuildOverview(accounts []Account, market MarketRates, operatingCashFlow, monthlyNetIncome float64) Overview {
	monthly := MonthlyPayments(accounts)
	rev := Revolving(accounts)
	dti := ComputeDTI(monthly, monthlyNetIncome)
	dscr := ComputeDSCR(operatingCashFlow, monthly)
	util := rev.Utilization()

	kpis := PortfolioKPIs{
		WeightedAvgRatePct: fin.Round2(WeightedAvgRate(accounts)),
		TotalBalance:       TotalBalance(accounts),
		MonthlyPayments:    monthly,
		DTI:                dti,
		DSCR:               dscr,
		UtilizationPct:     util,
	}

	var options []Option
	for _, a := range accounts {
		if a.Type != TypeEquipmentLoan && a.Type != TypeVehicleLoan {
			continue
		}
		newRate := market.TermRefi
		if newRate == 0 {
			newRate = a.RatePct
		}
		term := a.TermMonths
		if term <= 0 {
			term = defaultTermMonths
		}
		res := RefinanceSavings(a.Balance, a.RatePct, newRate, term, refiFeePct)
		options = append(options, Option{
			ID:               fmt.Sprintf("refi_%s", a.AccountID),
			Type:             "refinance",
			Description:      fmt.Sprintf("Refinance %s to %.1f%%", a.Name, newRate),
			EstSavingsAnnual: res.InterestSaved,
			EstFee:           res.Fees,
			Confidence:       "medium",
		})
	}

	return Overview{
		KPIs:       kpis,
		Revolving:  rev,
		Options:    options,
		Comparison: AvalancheVsSnowball(accounts),
		Alerts:     RiskAlerts(accounts, market, dscr, util),
	}
}

// ScenarioInputs parameterizes a single debt what-if.
type ScenarioInputs struct {
	AccountID    string  `json:"account_id,omitempty"`
	ExtraMonthly float64 `json:"extra_monthly,omitempty"`
	NewRatePct   float64 `json:"new_rate_pct,omitempty"`
	ShiftAmount  float64 `json:"shift_amount,omitempty"`
	ShiftFrom    string  `json:"shift_from,omitempty"`
	ShiftTo      string  `json:"shift_to,omitempty"`
}

// ScenarioImpact is one account's share of a simulated outcome.
type ScenarioImpact struct {
	AccountID     string  `json:"account_id"`
	InterestSaved float64 `json:"interest_saved"`
}

// ScenarioOutcome is the result of a debt what-if.
type ScenarioOutcome struct {
	NewMonthly    float64          `json:"new_monthly"`
	InterestSaved float64          `json:"interest_saved"`
	MonthsEarlier int              `json:"months_earlier"`
	PerAccount    []ScenarioImpact `json:"per_account_impacts"`
}

// SimulateScenario evaluates a named debt what-if against the account
// list. Unknown accounts or scenarios produce the unchanged baseline.
func SimulateScenario(accounts []Account, scenario string, inputs ScenarioInputs) ScenarioOutcome {
	baseline := MonthlyPayments(accounts)
	out := ScenarioOutcome{NewMonthly: baseline}

	find := func(id string) *Account {
		for i := range accounts {
			if accounts[i].AccountID == id {
				return &accounts[i]
			}
		}
		return nil
	}

	switch scenario {
	case "extra_payment":
		a := find(inputs.AccountID)
		if a == nil || inputs.ExtraMonthly <= 0 {
			break
		}
		base := simulateFixedPayment(a.Balance, a.RatePct, a.MonthlyPayment)
		boosted := simulateFixedPayment(a.Balance, a.RatePct, a.MonthlyPayment+inputs.ExtraMonthly)
		out.NewMonthly = baseline + inputs.ExtraMonthly
		out.InterestSaved = fin.Round2(base.InterestPaid - boosted.InterestPaid)
		out.MonthsEarlier = base.Months - boosted.Months
		out.PerAccount = []ScenarioImpact{{AccountID: a.AccountID, InterestSaved: out.InterestSaved}}

	case "biweekly":
		a := find(inputs.AccountID)
		if a == nil {
			break
		}
		res := BiweeklyEffect(a.Balance, a.RatePct, a.MonthlyPayment)
		out.InterestSaved = res.InterestSaved
		out.MonthsEarlier = res.MonthsEarlier
		out.PerAccount = []ScenarioImpact{{AccountID: a.AccountID, InterestSaved: res.InterestSaved}}

	case "refinance", "rate_change":
		a := find(inputs.AccountID)
		if a == nil {
			break
		}
		term := a.TermMonths
		if term <= 0 {
			term = defaultTermMonths
		}
		res := RefinanceSavings(a.Balance, a.RatePct, inputs.NewRatePct, term, 0)
		out.InterestSaved = res.InterestSaved
		out.PerAccount = []ScenarioImpact{{AccountID: a.AccountID, InterestSaved: res.InterestSaved}}

	case "balance_shift":
		from := find(inputs.ShiftFrom)
		to := find(inputs.ShiftTo)
		if from == nil || to == nil {
			break
		}
		saved := TransferSavings(inputs.ShiftAmount, from.RatePct, to.RatePct)
		out.InterestSaved = saved
		out.PerAccount = []ScenarioImpact{{AccountID: from.AccountID, InterestSaved: saved}}
	}

	return out
}
