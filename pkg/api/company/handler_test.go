package company

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lightsignal/pkg/core/scenario"
	"lightsignal/pkg/core/store"
)

func postJSON(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/company/snapshot", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	HandleUpsert(rec, req)
	return rec
}

func validSnapshot() store.Snapshot {
	return store.Snapshot{
		Series: []scenario.MonthlyRecord{
			{Month: "2025-06", Revenue: 100000, COGS: 60000, Opex: 30000, Cash: 50000},
		},
	}
}

func TestHandleUpsertValidation(t *testing.T) {
	if rec := postJSON(t, UpsertRequest{Snapshot: validSnapshot()}); rec.Code != http.StatusBadRequest {
		t.Errorf("missing company_id expected 400, got %d", rec.Code)
	}
	if rec := postJSON(t, UpsertRequest{CompanyID: "demo", Snapshot: validSnapshot()}); rec.Code != http.StatusConflict {
		t.Errorf("reserved demo id expected 409, got %d", rec.Code)
	}
	if rec := postJSON(t, UpsertRequest{CompanyID: "acme"}); rec.Code != http.StatusBadRequest {
		t.Errorf("empty series expected 400, got %d", rec.Code)
	}
}

func TestHandleUpsertWithoutDatabase(t *testing.T) {
	// No pool is initialized in tests, so a valid request surfaces the
	// storage failure instead of silently dropping the snapshot.
	rec := postJSON(t, UpsertRequest{CompanyID: "acme", Snapshot: validSnapshot()})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a database, got %d", rec.Code)
	}
}
