package benchmark

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleTable = `<html><body><table>
<tr><th>Metric</th><th>Median</th><th>P75</th></tr>
<tr><td>Net Margin</td><td>28.0%</td><td>35.0%</td></tr>
<tr><td>Revenue per Employee</td><td>$125,000</td><td>$145,000</td></tr>
<tr><td>Runway</td><td>5.5</td><td>8.0</td></tr>
</table></body></html>`

func postIngest(t *testing.T, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/admin/benchmarks/ingest", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	NewHandler(nil).HandleIngest(rec, req)
	return rec
}

func TestHandleIngestValidation(t *testing.T) {
	if rec := postIngest(t, IngestRequest{HTML: sampleTable}); rec.Code != http.StatusBadRequest {
		t.Errorf("missing naics expected 400, got %d", rec.Code)
	}
	if rec := postIngest(t, IngestRequest{NAICS: "238220", HTML: "<p>no table here</p>"}); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("tableless html expected 422, got %d", rec.Code)
	}
	if rec := postIngest(t, IngestRequest{
		NAICS: "238220",
		HTML:  "<table><tr><td>gross widgets</td><td>1</td><td>2</td></tr></table>",
	}); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unrecognized metrics expected 422, got %d", rec.Code)
	}
}

func TestHandleIngestWithoutDatabase(t *testing.T) {
	// Parsing succeeds, so the only failure left is storage: no pool is
	// initialized in tests.
	rec := postIngest(t, IngestRequest{NAICS: "238220", HTML: sampleTable})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a database, got %d", rec.Code)
	}
}
