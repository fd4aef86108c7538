package debt

import (
	"math"
	"sort"

	"lightsignal/pkg/core/fin"
)

// payoffCapMonths bounds the payoff simulation. Hitting the cap yields
// a partial result with Converged=false instead of an error: accounts
// whose minimum payment never covers interest legitimately never pay off.
const payoffCapMonths = 600

// balanceEpsilon treats residue below half a currency unit as paid off.
const balanceEpsilon = 0.5

type runningAccount struct {
	bal  float64
	rate float64
	min  float64
}

// SimulatePayoff runs the simplified payoff model: each month every
// open account accrues interest and pays its own minimum payment only.
// There is no cross-account reallocation of freed-up payments in this
// model (documented limitation); the ordering strategy fixes the
// iteration order deterministically.
func SimulatePayoff(accounts []Account, strategy Strategy) PayoffResult {
	ordered := orderAccounts(accounts, strategy)

	accs := make([]runningAccount, len(ordered))
	for i, a := range ordered {
		accs[i] = runningAccount{
			bal:  math.Max(0.0, a.Balance),
			rate: a.RatePct,
			min:  a.MonthlyPayment,
		}
	}

	totalInterest := 0.0
	months := 0
	for anyOpen(accs) && months < payoffCapMonths {
		months++
		for i := range accs {
			a := &accs[i]
			if a.bal <= 0 {
				continue
			}
			r := a.rate / 100.0 / 12.0
			interest := a.bal * r
			pay := math.Min(a.min, a.bal+interest)
			principal := pay - interest
			a.bal = math.Max(0.0, a.bal-principal)
			totalInterest += interest
		}
	}

	return PayoffResult{
		InterestPaid: totalInterest,
		Months:       months,
		Converged:    !anyOpen(accs),
	}
}

func anyOpen(accs []runningAccount) bool {
	for _, a := range accs {
		if a.bal > balanceEpsilon {
			return true
		}
	}
	return false
}

// orderAccounts returns a sorted copy; the input slice is never touched.
func orderAccounts(accounts []Account, strategy Strategy) []Account {
	ordered := make([]Account, len(accounts))
	copy(ordered, accounts)
	switch strategy {
	case Snowball:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Balance < ordered[j].Balance
		})
	default: // Avalanche
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].RatePct > ordered[j].RatePct
		})
	}
	return ordered
}

// AvalancheVsSnowball compares the two payoff strategies over the same
// account set. For rate-differentiated accounts avalanche never pays
// more total interest than snowball.
func AvalancheVsSnowball(accounts []Account) Comparison {
	av := SimulatePayoff(accounts, Avalanche)
	sn := SimulatePayoff(accounts, Snowball)
	return Comparison{
		Avalanche:     av,
		Snowball:      sn,
		DeltaInterest: fin.Round2(sn.InterestPaid - av.InterestPaid),
	}
}
