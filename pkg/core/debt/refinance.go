package debt

import "lightsignal/pkg/core/fin"

// RefinanceSavings nets the interest saved by re-amortizing the balance
// at newRate over the same remaining term, minus the one-time fee.
// A negative InterestSaved means refinancing is unfavorable; callers
// should surface that, not treat it as an error.
func RefinanceSavings(balance, oldRatePct, newRatePct float64, termMonths int, feePct float64) Savings {
	oldInterest := TotalInterest(Amortize(balance, oldRatePct, termMonths))
	newInterest := TotalInterest(Amortize(balance, newRatePct, termMonths))
	fees := balance * feePct / 100.0
	return Savings{
		InterestSaved: fin.Round2(oldInterest - newInterest - fees),
		Fees:          fees,
	}
}

// BiweeklyEffect estimates the effect of bi-weekly half-payments.
// 26 half-payments make 13 full payments a year, so the monthly model
// is re-run with the payment scaled by 13/12 and compared against the
// baseline schedule at the account's current payment.
func BiweeklyEffect(balance, ratePct, monthlyPayment float64) BiweeklyResult {
	if monthlyPayment <= 0 || balance <= 0 {
		return BiweeklyResult{}
	}

	base := simulateFixedPayment(balance, ratePct, monthlyPayment)
	boosted := simulateFixedPayment(balance, ratePct, monthlyPayment*13.0/12.0)

	monthsEarlier := base.Months - boosted.Months
	if monthsEarlier < 0 {
		monthsEarlier = 0
	}
	return BiweeklyResult{
		MonthsEarlier: monthsEarlier,
		InterestSaved: fin.Round2(base.InterestPaid - boosted.InterestPaid),
	}
}

// simulateFixedPayment pays a single balance down with a fixed payment,
// under the same cap and epsilon as the portfolio payoff model.
func simulateFixedPayment(balance, ratePct, payment float64) PayoffResult {
	r := ratePct / 100.0 / 12.0
	bal := balance
	totalInterest := 0.0
	months := 0
	for bal > balanceEpsilon && months < payoffCapMonths {
		months++
		interest := bal * r
		pay := payment
		if pay > bal+interest {
			pay = bal + interest
		}
		principal := pay - interest
		if principal < 0 {
			principal = 0
		}
		bal -= principal
		totalInterest += interest
	}
	return PayoffResult{
		InterestPaid: totalInterest,
		Months:       months,
		Converged:    bal <= balanceEpsilon,
	}
}

// TransferSavings estimates the first-year interest saved by moving a
// balance from a higher-rate account to a lower-rate one. Negative when
// the target rate is higher.
func TransferSavings(amount, fromRatePct, toRatePct float64) float64 {
	return fin.Round2(amount * (fromRatePct - toRatePct) / 100.0)
}
