package fin

import "math"

// SafeDiv divides num by den, returning 0 when den is 0.
// Use RatioOf instead when callers must distinguish "undefined" from 0.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Clamp01 clamps v into [0, 1]. Every raw sub-score is clamped before
// weights are applied so composite scores cannot leave [0, 100].
func Clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

// GrowthRate computes (current - prior) / |prior|, 0 when prior is 0.
func GrowthRate(current, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return (current - prior) / math.Abs(prior)
}

// Round2 rounds to 2 decimals (currency amounts).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal (scores, percentages).
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
