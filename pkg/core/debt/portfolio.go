package debt

import (
	"math"

	"lightsignal/pkg/core/fin"
)

// WeightedAvgRate is the balance-weighted average rate across accounts
// with a positive balance. 0 when no such accounts exist.
func WeightedAvgRate(accounts []Account) float64 {
	totalBal := 0.0
	numer := 0.0
	for _, a := range accounts {
		bal := math.Max(0.0, a.Balance)
		if bal > 0 {
			totalBal += bal
			numer += bal * a.RatePct
		}
	}
	if totalBal <= 0 {
		return 0
	}
	return numer / totalBal
}

// MonthlyPayments sums the minimum payments across all accounts.
func MonthlyPayments(accounts []Account) float64 {
	s := 0.0
	for _, a := range accounts {
		s += a.MonthlyPayment
	}
	return s
}

// TotalBalance sums account balances.
func TotalBalance(accounts []Account) float64 {
	s := 0.0
	for _, a := range accounts {
		s += a.Balance
	}
	return s
}

// RevolvingTotals aggregates balance and limit over revolving accounts
// (credit cards and lines of credit).
type RevolvingTotals struct {
	Balance float64 `json:"balance"`
	Limit   float64 `json:"limit"`
}

func Revolving(accounts []Account) RevolvingTotals {
	var rt RevolvingTotals
	for _, a := range accounts {
		if a.Type == TypeCreditCard || a.Type == TypeLineOfCredit {
			rt.Balance += a.Balance
			rt.Limit += a.Limit
		}
	}
	return rt
}

// Utilization is revolving balance over revolving limit, Undefined when
// no limit is known.
func (rt RevolvingTotals) Utilization() fin.Ratio {
	return fin.RatioOf(rt.Balance, rt.Limit)
}

// ComputeDTI is total monthly debt over monthly net income.
// Undefined (not zero) when income is non-positive.
func ComputeDTI(totalMonthlyDebt, monthlyNetIncome float64) fin.Ratio {
	return fin.RatioOf(totalMonthlyDebt, monthlyNetIncome)
}

// ComputeDSCR is operating cash flow over total debt service.
// Undefined (not zero) when there is no debt service.
func ComputeDSCR(operatingCashFlow, totalDebtService float64) fin.Ratio {
	return fin.RatioOf(operatingCashFlow, totalDebtService)
}
