// Package scoring holds the composite 0-100 reductions: efficiency,
// growth opportunity, and business health. Weight vectors are exported
// constants so output parity is unit-testable, and every raw sub-score
// is clamped to [0,1] before weighting so no composite can leave
// [0,100] on extreme inputs.
package scoring

import "lightsignal/pkg/core/fin"

// Efficiency score weights: expense discipline, margin, revenue per
// employee vs peers.
const (
	WeightExpense = 0.4
	WeightMargin  = 0.4
	WeightRPE     = 0.2
)

// Growth-opportunity index weights.
const (
	WeightMarketSize  = 0.35
	WeightPeerSuccess = 0.25
	WeightCapital     = 0.15
	WeightROI         = 0.25
)

// Business-health composite weights.
const (
	WeightFinancial   = 0.40
	WeightOperational = 0.25
	WeightCustomer    = 0.20
	WeightRisk        = 0.15
)

// Normalization anchors for the growth index.
const (
	marketSizeNorm  = 1_000_000.0
	capitalSoftener = 100_000.0
)

// Driver is one labeled contributor surfaced with a score.
type Driver struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScoreBlock pairs a composite score with its discrete state and the
// drivers behind it.
type ScoreBlock struct {
	Score   float64  `json:"score"`
	State   State    `json:"state"`
	Drivers []Driver `json:"drivers"`
}

// Efficiency reduces expense ratio, net margin (as a fraction), and
// revenue per employee relative to the peer median into a 0-100 score.
// A missing peer median falls back to the company's own figure so the
// RPE term degrades to full credit rather than an error.
func Efficiency(expenseRatio, marginFrac, revenuePerEmployee, peerMedianRPE float64) float64 {
	if peerMedianRPE <= 0 {
		if revenuePerEmployee > 1 {
			peerMedianRPE = revenuePerEmployee
		} else {
			peerMedianRPE = 1
		}
	}
	a := fin.Clamp01(1 - expenseRatio)
	b := fin.Clamp01(marginFrac)
	c := fin.Clamp01(revenuePerEmployee / peerMedianRPE)
	raw := WeightExpense*a + WeightMargin*b + WeightRPE*c
	return fin.Round1(100 * fin.Clamp01(raw))
}

// GrowthFeatures are the inputs of the growth-opportunity index.
type GrowthFeatures struct {
	MarketSize      float64 `json:"market_size"`
	PeerSuccess     float64 `json:"peer_success"`
	RequiredCapital float64 `json:"required_capital"`
	EstROI          float64 `json:"est_roi"`
}

// GrowthOpportunity scores an opportunity 0-100. Market size is
// normalized against a 1M anchor, required capital scores inversely
// (cheaper opportunities rank higher).
func GrowthOpportunity(f GrowthFeatures) float64 {
	market := fin.Clamp01(f.MarketSize / marketSizeNorm)
	peerSuccess := fin.Clamp01(f.PeerSuccess)
	capitalScore := 1.0 / (1.0 + f.RequiredCapital/capitalSoftener)
	roi := fin.Clamp01(f.EstROI)
	raw := WeightMarketSize*market + WeightPeerSuccess*peerSuccess +
		WeightCapital*fin.Clamp01(capitalScore) + WeightROI*roi
	return fin.Round1(100 * fin.Clamp01(raw))
}

// HealthComposite blends the four category sub-scores (each already in
// [0,1], clamped again on entry) into the overall 0-100
// health score. risk enters inverted: higher risk lowers the score.
func HealthComposite(financial, operational, customer, risk float64) float64 {
	raw := WeightFinancial*fin.Clamp01(financial) +
		WeightOperational*fin.Clamp01(operational) +
		WeightCustomer*fin.Clamp01(customer) +
		WeightRisk*(1-fin.Clamp01(risk))
	return fin.Round1(100 * fin.Clamp01(raw))
}
