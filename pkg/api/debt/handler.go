// Package debt exposes the debt dashboard and what-if endpoints.
package debt

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"lightsignal/pkg/api/apiutil"
	coreDebt "lightsignal/pkg/core/debt"
	"lightsignal/pkg/core/demo"
	"lightsignal/pkg/core/store"
)

// companyDebtState resolves the accounts and cash-flow anchors the debt
// engine needs. The demo fixture carries explicit figures; snapshot
// companies fall back to the latest month's net income for both.
func companyDebtState(r *http.Request, companyID string) (accounts []coreDebt.Account, market coreDebt.MarketRates, ocf, netIncome float64, ok bool) {
	if f, found := demo.Load(companyID); found {
		return f.Accounts, f.MarketRates, f.OperatingCashFlow, f.MonthlyNetIncome, true
	}
	snap, found := store.ResolveSnapshot(r.Context(), companyID)
	if !found {
		return nil, coreDebt.MarketRates{}, 0, 0, false
	}
	if n := len(snap.Series); n > 0 {
		latest := snap.Series[n-1]
		netIncome = latest.Revenue - latest.COGS - latest.Opex
		ocf = netIncome
	}
	return snap.Accounts, coreDebt.MarketRates{}, ocf, netIncome, true
}

// FullRequest asks for the complete debt analysis block.
type FullRequest struct {
	CompanyID          string `json:"company_id"`
	Range              string `json:"range,omitempty"`
	IncludeMarketRates bool   `json:"include_market_rates"`
}

// FullResponse is the dashboard payload.
type FullResponse struct {
	coreDebt.Overview
	Accounts []coreDebt.Account `json:"accounts"`
	Meta     apiutil.Meta       `json:"_meta"`
}

// HandleFull is POST /api/ai/debt/full.
func HandleFull(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "POST") {
		return
	}
	start := time.Now()

	var req FullRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	accounts, market, ocf, netIncome, ok := companyDebtState(r, req.CompanyID)
	if !ok {
		http.Error(w, "Unknown company: "+req.CompanyID, http.StatusNotFound)
		return
	}

	if !req.IncludeMarketRates {
		market = coreDebt.MarketRates{}
	}

	overview := coreDebt.BuildOverview(accounts, market, ocf, netIncome)

	resp := FullResponse{
		Overview: overview,
		Accounts: accounts,
		Meta: apiutil.NewMeta("medium", start, apiutil.Provenance{
			BaselineSource: "quickbooks_demo",
			Sources:        []string{"QuickBooks", "Plaid", "Manual"},
			Notes:          []string{"Amortization computed locally; market rates cached."},
			Confidence:     "medium",
			UsedPriors:     true,
			PriorWeight:    0.4,
		}),
	}

	logrus.WithFields(logrus.Fields{
		"company_id":  req.CompanyID,
		"run_id":      resp.Meta.RunID,
		"duration_ms": resp.Meta.LatencyMS,
		"accounts":    len(accounts),
	}).Info("debt overview served")

	apiutil.WriteJSON(w, http.StatusOK, resp)
}

// SimulateRequest runs one named debt what-if.
type SimulateRequest struct {
	CompanyID string                  `json:"company_id"`
	Scenario  string                  `json:"scenario"`
	Inputs    coreDebt.ScenarioInputs `json:"inputs"`
}

// SimulateResponse wraps the outcome with provenance.
type SimulateResponse struct {
	coreDebt.ScenarioOutcome
	Meta apiutil.Meta `json:"_meta"`
}

// HandleSimulate is POST /api/ai/debt/simulate.
func HandleSimulate(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "POST") {
		return
	}
	start := time.Now()

	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	accounts, _, _, _, ok := companyDebtState(r, req.CompanyID)
	if !ok {
		http.Error(w, "Unknown company: "+req.CompanyID, http.StatusNotFound)
		return
	}

	outcome := coreDebt.SimulateScenario(accounts, req.Scenario, req.Inputs)

	resp := SimulateResponse{
		ScenarioOutcome: outcome,
		Meta: apiutil.NewMeta("low", start, apiutil.Provenance{
			BaselineSource: "quickbooks_demo",
			Sources:        []string{"Manual"},
			Notes:          []string{"Scenario simulated locally"},
			Confidence:     "low",
		}),
	}

	logrus.WithFields(logrus.Fields{
		"company_id":  req.CompanyID,
		"scenario":    req.Scenario,
		"run_id":      resp.Meta.RunID,
		"duration_ms": resp.Meta.LatencyMS,
	}).Info("debt scenario simulated")

	apiutil.WriteJSON(w, http.StatusOK, resp)
}
