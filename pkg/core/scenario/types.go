package scenario

import "lightsignal/pkg/core/fin"

// MonthlyRecord is one normalized month of the financial baseline.
type MonthlyRecord struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	COGS    float64 `json:"cogs"`
	Opex    float64 `json:"opex"`
	Cash    float64 `json:"cash"`
}

// Baseline is the ordered monthly series, most recent last.
type Baseline struct {
	Series []MonthlyRecord `json:"series"`
}

// Latest returns the most recent month.
func (b Baseline) Latest() MonthlyRecord {
	return b.Series[len(b.Series)-1]
}

// Inputs are the named scenario deltas. All optional, zero means
// "no change". A pure value object with no identity.
type Inputs struct {
	PriceChangePct  float64 `json:"price_change_pct"`
	HeadcountDelta  int     `json:"headcount_delta"`
	LoanAmount      float64 `json:"loan_amount"`
	InterestRatePct float64 `json:"interest_rate_pct"`
	CapexAmount     float64 `json:"capex_amount"`
}

// Block is a derived KPI block for either the base or scenario state.
// Recomputed on every call, never mutated after construction.
type Block struct {
	Revenue      float64    `json:"revenue"`
	NetIncome    float64    `json:"net_income"`
	MarginPct    float64    `json:"margin_pct"`
	RunwayMonths fin.Runway `json:"runway_months"`
}

// KPIs are the base-vs-scenario deltas. RoiPct and PaybackMonths are
// nil when not applicable (no capex), never a numeric placeholder.
type KPIs struct {
	RevenueDeltaPct    float64  `json:"revenue_delta_pct"`
	RevenueDelta       float64  `json:"revenue_delta_dollars"`
	NetIncomeDeltaPct  float64  `json:"net_income_delta_pct"`
	MarginDeltaPts     float64  `json:"margin_delta_pts"`
	CashFlowDelta      float64  `json:"cash_flow_delta"`
	RunwayDeltaMonths  float64  `json:"runway_delta_months"`
	RoiPct             *float64 `json:"roi_pct,omitempty"`
	PaybackMonths      *float64 `json:"payback_months,omitempty"`
}

// Point is one datum of a chart series. Keys depend on the chart.
type Point map[string]interface{}

// Chart is a named visual series for the dashboard.
type Chart struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Projection is the full composer output.
type Projection struct {
	Base     Block   `json:"base"`
	Scenario Block   `json:"scenario"`
	KPIs     KPIs    `json:"kpis"`
	Visuals  []Chart `json:"visuals"`

	// Intermediate figures downstream consumers (Monte Carlo, stress
	// tests) read without re-deriving them.
	BaseCOGS     float64 `json:"-"`
	BaseOpex     float64 `json:"-"`
	BaseCash     float64 `json:"-"`
	ScenarioOpex float64 `json:"-"`
	ScenarioCash float64 `json:"-"`
}
