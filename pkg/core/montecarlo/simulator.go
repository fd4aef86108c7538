package montecarlo

import (
	"math"
	"math/rand"
	"sort"

	"lightsignal/pkg/core/scenario"
)

// Volatility assumptions applied per trial.
const (
	RevenueSigma = 0.15
	CostSigma    = 0.10
)

// DefaultTrials is used when the caller does not specify a count.
// Results below ~20 trials are statistically unreliable (the percentile
// indices collapse); that is a documented precondition, not enforced.
const DefaultTrials = 1000

// MetricBand is the percentile band for one metric across trials.
type MetricBand struct {
	Metric string  `json:"metric"`
	P5     float64 `json:"p5"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
}

// Simulator draws trial outcomes from an injected random source so
// runs are reproducible when the caller seeds it. Parallel use needs
// one Simulator (one source) per goroutine to avoid correlated draws.
type Simulator struct {
	rng *rand.Rand
}

// New builds a Simulator on the given source. A nil source gets a
// non-deterministic seed.
func New(rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Simulator{rng: rng}
}

// Run perturbs the base figures with Normal(1.0, sigma) multipliers,
// applies the same scenario formula as the composer to each trial, and
// reduces the trials to p5/p50/p95 bands for revenue, margin_pct, and
// cash.
func (s *Simulator) Run(baseRevenue, baseCosts, baseCash float64, inputs scenario.Inputs, trials int) []MetricBand {
	if trials <= 0 {
		trials = DefaultTrials
	}

	revenues := make([]float64, 0, trials)
	margins := make([]float64, 0, trials)
	cash := make([]float64, 0, trials)

	for i := 0; i < trials; i++ {
		revVar := 1.0 + s.rng.NormFloat64()*RevenueSigma
		costVar := 1.0 + s.rng.NormFloat64()*CostSigma

		simRevenue := baseRevenue * revVar * (1 + inputs.PriceChangePct/100)
		simCosts := baseCosts*costVar + float64(inputs.HeadcountDelta)*scenario.CostPerHead
		simMargin := (simRevenue - simCosts) / math.Max(simRevenue, 1e-6) * 100
		simCash := baseCash - inputs.CapexAmount + (simRevenue - simCosts)

		revenues = append(revenues, simRevenue)
		margins = append(margins, simMargin)
		cash = append(cash, simCash)
	}

	return []MetricBand{
		percentiles("revenue", revenues),
		percentiles("margin_pct", margins),
		percentiles("cash", cash),
	}
}

// percentiles sorts the trial outcomes and indexes the floor positions
// for p5/p50/p95.
func percentiles(metric string, data []float64) MetricBand {
	sort.Float64s(data)
	n := len(data)
	return MetricBand{
		Metric: metric,
		P5:     data[n*5/100],
		P50:    data[n*50/100],
		P95:    data[n*95/100],
	}
}
