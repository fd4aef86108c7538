// Package scenario exposes the what-if lab endpoints.
package scenario

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"lightsignal/pkg/api/apiutil"
	"lightsignal/pkg/core/benchmark"
	"lightsignal/pkg/core/insights"
	"lightsignal/pkg/core/montecarlo"
	coreScenario "lightsignal/pkg/core/scenario"
	"lightsignal/pkg/core/store"
	"lightsignal/pkg/core/stress"
)

// Handler holds the lab's collaborators.
type Handler struct {
	Peers    benchmark.Source
	Narrator *insights.Narrator
}

func NewHandler(peers benchmark.Source, narrator *insights.Narrator) *Handler {
	return &Handler{Peers: peers, Narrator: narrator}
}

// LabRequest mirrors the scenario lab form.
type LabRequest struct {
	CompanyID     string              `json:"company_id"`
	ScenarioName  string              `json:"scenario_name"`
	Description   string              `json:"description"`
	Inputs        coreScenario.Inputs `json:"inputs"`
	HorizonMonths int                 `json:"horizon_months"`
	RunMonteCarlo bool                `json:"run_monte_carlo"`
	RunStressTest bool                `json:"run_stress_test"`
	IncludePeers  bool                `json:"include_peers"`
}

// LabResponse is the full analysis payload.
type LabResponse struct {
	ScenarioName    string                    `json:"scenario_name"`
	Base            coreScenario.Block        `json:"base"`
	Scenario        coreScenario.Block        `json:"scenario"`
	KPIs            coreScenario.KPIs         `json:"kpis"`
	Visuals         []coreScenario.Chart      `json:"visuals"`
	MonteCarlo      []montecarlo.MetricBand   `json:"monte_carlo,omitempty"`
	StressTests     []stress.Result           `json:"stress_tests,omitempty"`
	PeerBenchmarks  []benchmark.PeerBenchmark `json:"peer_benchmarks,omitempty"`
	Recommendations []string                  `json:"recommendations"`
	Risks           []string                  `json:"risks"`
	Narrative       string                    `json:"narrative,omitempty"`
	Confidence      float64                   `json:"confidence"`
	Meta            apiutil.Meta              `json:"_meta"`
}

// HandleLab is POST /api/ai/scenario/lab.
func (h *Handler) HandleLab(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "POST") {
		return
	}
	start := time.Now()

	var req LabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	snap, ok := store.ResolveSnapshot(r.Context(), req.CompanyID)
	if !ok {
		http.Error(w, "Unknown company: "+req.CompanyID, http.StatusNotFound)
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"company_id": req.CompanyID,
		"scenario":   req.ScenarioName,
	})

	baseline := coreScenario.Baseline{Series: snap.Series}
	proj, err := coreScenario.Project(baseline, req.Inputs, req.HorizonMonths)
	if err != nil {
		log.WithError(err).Warn("projection failed")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := LabResponse{
		ScenarioName: req.ScenarioName,
		Base:         proj.Base,
		Scenario:     proj.Scenario,
		KPIs:         proj.KPIs,
		Visuals:      proj.Visuals,
	}

	if req.RunMonteCarlo {
		sim := montecarlo.New(nil)
		resp.MonteCarlo = sim.Run(proj.Base.Revenue, proj.BaseCOGS+proj.BaseOpex, proj.BaseCash, req.Inputs, montecarlo.DefaultTrials)
	}
	if req.RunStressTest {
		// Shocks apply to the projected scenario state, and the rate
		// shock to the scenario's new borrowing.
		resp.StressTests = stress.Run(proj.Scenario.Revenue, proj.BaseCOGS, proj.ScenarioOpex, proj.ScenarioCash, req.Inputs.LoanAmount)
	}
	if req.IncludePeers {
		runway := proj.Base.RunwayMonths.Months
		resp.PeerBenchmarks = benchmark.Compare(h.Peers, snap.Profile.NAICS, proj.Base.MarginPct, runway)
	}

	resp.Recommendations = insights.Recommendations(proj.KPIs, resp.StressTests)
	resp.Risks = insights.Risks(proj.Scenario, proj.KPIs, resp.StressTests)

	if narrative, err := h.Narrator.ScenarioNarrative(r.Context(), req.ScenarioName, *proj, resp.StressTests); err == nil {
		resp.Narrative = narrative
	}

	resp.Confidence = 0.85
	if !snap.Profile.Demo() {
		resp.Confidence = 0.92
	}
	trials := 0
	if req.RunMonteCarlo {
		trials = montecarlo.DefaultTrials
	}
	resp.Meta = apiutil.NewMeta("medium", start, apiutil.Provenance{
		BaselineSource: "demo_financials",
		Sources:        []string{"Financial Overview", "Debt"},
		Notes:          []string{"Projection computed locally"},
		Confidence:     "medium",
		UsedPriors:     req.IncludePeers,
		PriorWeight:    priorWeight(req.IncludePeers),
	})

	log.WithFields(logrus.Fields{
		"run_id":      resp.Meta.RunID,
		"duration_ms": resp.Meta.LatencyMS,
		"mc_trials":   trials,
	}).Info("scenario lab analysis served")

	apiutil.WriteJSON(w, http.StatusOK, resp)
}

func priorWeight(usedPriors bool) float64 {
	if usedPriors {
		return 0.4
	}
	return 0
}

// CompareRequest runs several scenarios against the same baseline.
type CompareRequest struct {
	CompanyID string       `json:"company_id"`
	Scenarios []LabRequest `json:"scenarios"`
}

// Comparison is one scenario's headline row.
type Comparison struct {
	ScenarioName string   `json:"scenario_name"`
	Revenue      float64  `json:"revenue"`
	NetIncome    float64  `json:"net_income"`
	MarginPct    float64  `json:"margin_pct"`
	RunwayMonths float64  `json:"runway_months"`
	RoiPct       *float64 `json:"roi_pct,omitempty"`
}

// CompareResponse is the side-by-side table.
type CompareResponse struct {
	Comparisons []Comparison `json:"comparisons"`
	Meta        apiutil.Meta `json:"_meta"`
}

// HandleCompare is POST /api/ai/scenario/compare.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "POST") {
		return
	}
	start := time.Now()

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	snap, ok := store.ResolveSnapshot(r.Context(), req.CompanyID)
	if !ok {
		http.Error(w, "Unknown company: "+req.CompanyID, http.StatusNotFound)
		return
	}
	baseline := coreScenario.Baseline{Series: snap.Series}

	comparisons := make([]Comparison, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		proj, err := coreScenario.Project(baseline, sc.Inputs, sc.HorizonMonths)
		if err != nil {
			continue
		}
		comparisons = append(comparisons, Comparison{
			ScenarioName: sc.ScenarioName,
			Revenue:      proj.Scenario.Revenue,
			NetIncome:    proj.Scenario.NetIncome,
			MarginPct:    proj.Scenario.MarginPct,
			RunwayMonths: proj.Scenario.RunwayMonths.Months,
			RoiPct:       proj.KPIs.RoiPct,
		})
	}

	apiutil.WriteJSON(w, http.StatusOK, CompareResponse{
		Comparisons: comparisons,
		Meta: apiutil.NewMeta("medium", start, apiutil.Provenance{
			BaselineSource: "demo_financials",
			Sources:        []string{"Financial Overview"},
			Notes:          []string{"Scenarios compared against a shared baseline"},
			Confidence:     "medium",
		}),
	})
}
