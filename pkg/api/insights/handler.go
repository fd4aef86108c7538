// Package insights exposes the business pulse and health endpoints.
package insights

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"lightsignal/pkg/api/apiutil"
	"lightsignal/pkg/core/benchmark"
	coreInsights "lightsignal/pkg/core/insights"
	"lightsignal/pkg/core/store"
)

// Handler holds the insight endpoints' collaborators.
type Handler struct {
	Peers    benchmark.Source
	Narrator *coreInsights.Narrator
}

func NewHandler(peers benchmark.Source, narrator *coreInsights.Narrator) *Handler {
	return &Handler{Peers: peers, Narrator: narrator}
}

// Request is shared by the pulse and health endpoints.
type Request struct {
	CompanyID    string `json:"company_id"`
	IncludePeers bool   `json:"include_peers"`
}

// PulseResponse wraps the pulse block with provenance.
type PulseResponse struct {
	coreInsights.Pulse
	Narrative string       `json:"narrative,omitempty"`
	Meta      apiutil.Meta `json:"_meta"`
}

// HandlePulse is POST /api/ai/insights.
func (h *Handler) HandlePulse(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "POST") {
		return
	}
	start := time.Now()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	snap, ok := store.ResolveSnapshot(r.Context(), req.CompanyID)
	if !ok {
		http.Error(w, "Unknown company: "+req.CompanyID, http.StatusNotFound)
		return
	}

	var peers benchmark.Source
	if req.IncludePeers {
		peers = h.Peers
	}
	pulse := coreInsights.PulseInsights(snap.Profile, snap.Series, peers)

	resp := PulseResponse{Pulse: pulse}
	if narrative, err := h.Narrator.PulseNarrative(r.Context(), pulse); err == nil {
		resp.Narrative = narrative
	}

	prov := apiutil.Provenance{
		BaselineSource: "quickbooks_demo",
		Confidence:     "medium",
	}
	if req.IncludePeers {
		prov.UsedPriors = true
		prov.PriorWeight = 0.4
		prov.Notes = append(prov.Notes, "peer values are demo priors")
	}
	resp.Meta = apiutil.NewMeta("medium", start, prov)

	logrus.WithFields(logrus.Fields{
		"company_id":  req.CompanyID,
		"run_id":      resp.Meta.RunID,
		"duration_ms": resp.Meta.LatencyMS,
	}).Info("pulse insights served")

	apiutil.WriteJSON(w, http.StatusOK, resp)
}

// HealthResponse wraps the health report with provenance.
type HealthResponse struct {
	coreInsights.Report
	Narrative string       `json:"narrative,omitempty"`
	Meta      apiutil.Meta `json:"_meta"`
}

// HandleHealth is POST /api/ai/health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "POST") {
		return
	}
	start := time.Now()

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	snap, ok := store.ResolveSnapshot(r.Context(), req.CompanyID)
	if !ok {
		http.Error(w, "Unknown company: "+req.CompanyID, http.StatusNotFound)
		return
	}

	var peers benchmark.Source
	if req.IncludePeers {
		peers = h.Peers
	}
	report := coreInsights.HealthReport(snap.Profile, snap.Series, peers)

	resp := HealthResponse{Report: report}
	if narrative, err := h.Narrator.HealthNarrative(r.Context(), report); err == nil {
		resp.Narrative = narrative
	}

	prov := apiutil.Provenance{
		BaselineSource: "quickbooks_demo",
		Sources:        []string{"Financial Overview", "Reviews", "Debt"},
		Notes:          []string{"Composite health score derived from normalized sub-metrics"},
		Confidence:     "low",
	}
	if req.IncludePeers {
		prov.Notes = append(prov.Notes, "Peer priors included (demo)")
	}
	resp.Meta = apiutil.NewMeta("low", start, prov)

	logrus.WithFields(logrus.Fields{
		"company_id":  req.CompanyID,
		"run_id":      resp.Meta.RunID,
		"duration_ms": resp.Meta.LatencyMS,
	}).Info("health report served")

	apiutil.WriteJSON(w, http.StatusOK, resp)
}

// CoachRequest carries the owner's question.
type CoachRequest struct {
	CompanyID string `json:"company_id"`
	Question  string `json:"question"`
}

// CoachResponse is the structured answer with provenance.
type CoachResponse struct {
	coreInsights.CoachAnswer
	Meta apiutil.Meta `json:"_meta"`
}

// HandleCoach is POST /api/ai/health/coach.
func (h *Handler) HandleCoach(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "POST") {
		return
	}
	start := time.Now()

	var req CoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	snap, ok := store.ResolveSnapshot(r.Context(), req.CompanyID)
	if !ok {
		http.Error(w, "Unknown company: "+req.CompanyID, http.StatusNotFound)
		return
	}
	report := coreInsights.HealthReport(snap.Profile, snap.Series, nil)

	confidence := "medium"
	ans, err := h.Narrator.Coach(r.Context(), req.Question, report)
	if err != nil {
		// No provider, or an unparseable reply: answer from the
		// computed report instead of failing the request.
		ans = coachFallback(report)
		confidence = "low"
	}

	resp := CoachResponse{
		CoachAnswer: ans,
		Meta: apiutil.NewMeta(confidence, start, apiutil.Provenance{
			BaselineSource: "quickbooks_demo",
			Sources:        []string{"Financial Overview"},
			Confidence:     confidence,
		}),
	}

	logrus.WithFields(logrus.Fields{
		"company_id":  req.CompanyID,
		"run_id":      resp.Meta.RunID,
		"duration_ms": resp.Meta.LatencyMS,
	}).Info("coach answer served")

	apiutil.WriteJSON(w, http.StatusOK, resp)
}

func coachFallback(report coreInsights.Report) coreInsights.CoachAnswer {
	ans := coreInsights.CoachAnswer{Answer: report.Overview.Summary}
	if len(report.Recommendations) > 0 {
		rec := report.Recommendations[0]
		ans.Answer += ". Suggested next step: " + rec.Title + "."
		ans.SuggestedLevers = []coreInsights.Lever{rec.Lever}
	}
	return ans
}
