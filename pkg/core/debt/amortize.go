package debt

import "math"

// Amortize computes a level-payment amortization schedule.
// Returns an empty schedule (not an error) for non-positive balance or
// term. A zero rate degrades to straight-line principal.
// The schedule stops early once the balance reaches zero, and the sum
// of principal across entries equals the original balance.
func Amortize(balance, annualRatePct float64, termMonths int) []Entry {
	if termMonths <= 0 || balance <= 0 {
		return nil
	}

	r := annualRatePct / 100.0 / 12.0
	n := float64(termMonths)

	var payment float64
	if r == 0 {
		payment = balance / n
	} else {
		payment = r * balance / (1 - math.Pow(1+r, -n))
	}

	schedule := make([]Entry, 0, termMonths)
	bal := balance
	for month := 1; month <= termMonths; month++ {
		interest := bal * r
		// Clamp: a payment smaller than accrued interest pays no principal
		// rather than going negative.
		principal := 0.0
		if payment > interest {
			principal = math.Min(bal, payment-interest)
		}
		bal -= principal
		schedule = append(schedule, Entry{
			Month:     month,
			Payment:   payment,
			Principal: principal,
			Interest:  interest,
			Balance:   math.Max(0.0, bal),
		})
		if bal <= 0 {
			break
		}
	}
	return schedule
}

// TotalInterest sums the interest column of a schedule.
func TotalInterest(schedule []Entry) float64 {
	total := 0.0
	for _, e := range schedule {
		total += e.Interest
	}
	return total
}
