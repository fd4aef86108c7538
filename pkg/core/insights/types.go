// Package insights turns computed financials into advisory output:
// threshold-driven recommendations and risk callouts, the business
// pulse (efficiency and growth scores with a department heatmap), and
// the periodic health report. All rule evaluation is deterministic;
// only the optional narrative layer calls an LLM.
package insights

// Profile is the company context the engines score against.
type Profile struct {
	CompanyID       string  `json:"company_id"`
	Name            string  `json:"name"`
	NAICS           string  `json:"naics"`
	Region          string  `json:"region"`
	Employees       int     `json:"employees"`
	ARDays          float64 `json:"ar_days"`
	Mode            string  `json:"mode"`
	ReviewSentiment float64 `json:"review_sentiment"`
}

// Demo reports whether the profile runs on seeded fixture data.
func (p Profile) Demo() bool {
	return p.Mode == "demo"
}

// Lever is the scenario input a recommendation maps to, so the UI can
// pre-fill a simulation from the advice.
type Lever struct {
	Category string  `json:"category"`
	Key      string  `json:"key"`
	Value    float64 `json:"value"`
}

// Recommendation is one structured advisory item.
type Recommendation struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	ExpectedImpact string `json:"expected_impact"`
	Confidence     string `json:"confidence"`
	Timeframe      string `json:"timeframe"`
	Lever          Lever  `json:"lever"`
}

// HeatmapCell is one department's state on the pulse heatmap.
type HeatmapCell struct {
	Department string `json:"department"`
	Metric     string `json:"metric"`
	State      string `json:"state"`
}

// HealthAlert flags a breached health threshold.
type HealthAlert struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	LinkedKPIs  []string `json:"linked_kpis"`
}
