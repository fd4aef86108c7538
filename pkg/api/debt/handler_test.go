package debt

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleFull(t *testing.T) {
	rec := postJSON(t, HandleFull, FullRequest{CompanyID: "demo", IncludeMarketRates: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp FullResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}

	// Demo portfolio: 120000 + 45000 + 20000.
	if resp.KPIs.TotalBalance != 185000 {
		t.Errorf("total balance expected 185000, got %f", resp.KPIs.TotalBalance)
	}
	if len(resp.Accounts) != 3 {
		t.Errorf("expected 3 accounts, got %d", len(resp.Accounts))
	}
	// The 8.5% equipment loan gets a refinance option at 6.5%.
	if len(resp.Options) != 1 || resp.Options[0].ID != "refi_debt-002" {
		t.Errorf("expected one refinance option, got %+v", resp.Options)
	}
	if resp.Meta.RunID == "" || resp.Meta.Source != "lightsignal.orchestrator" {
		t.Errorf("meta incomplete: %+v", resp.Meta)
	}
}

func TestHandleFullUnknownCompany(t *testing.T) {
	rec := postJSON(t, HandleFull, FullRequest{CompanyID: "acme"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleSimulateBiweekly(t *testing.T) {
	rec := postJSON(t, HandleSimulate, map[string]interface{}{
		"company_id": "demo",
		"scenario":   "biweekly",
		"inputs":     map[string]interface{}{"account_id": "debt-002"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp SimulateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp.InterestSaved <= 0 || resp.MonthsEarlier <= 0 {
		t.Errorf("biweekly on a 8.5%% loan must save interest and time: %+v", resp.ScenarioOutcome)
	}
	if len(resp.PerAccount) != 1 || resp.PerAccount[0].AccountID != "debt-002" {
		t.Errorf("per-account impact wrong: %+v", resp.PerAccount)
	}
}

func TestPreflight(t *testing.T) {
	req := httptest.NewRequest("OPTIONS", "/", nil)
	rec := httptest.NewRecorder()
	HandleFull(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("preflight expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
