// Package company exposes the snapshot ingestion endpoint. Connectors
// (or manual uploads) push a company's normalized financial state here;
// every engine then serves that company by id.
package company

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"lightsignal/pkg/api/apiutil"
	"lightsignal/pkg/core/store"
)

// UpsertRequest carries one company snapshot.
type UpsertRequest struct {
	CompanyID string         `json:"company_id"`
	Snapshot  store.Snapshot `json:"snapshot"`
}

// UpsertResponse acknowledges the stored snapshot.
type UpsertResponse struct {
	CompanyID string       `json:"company_id"`
	Months    int          `json:"months"`
	Accounts  int          `json:"accounts"`
	Meta      apiutil.Meta `json:"_meta"`
}

// HandleUpsert is POST /api/company/snapshot.
func HandleUpsert(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "POST") {
		return
	}
	start := time.Now()

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.CompanyID == "" {
		http.Error(w, "company_id is required", http.StatusBadRequest)
		return
	}
	if req.CompanyID == "demo" {
		http.Error(w, "company_id demo is reserved for the seeded fixture", http.StatusConflict)
		return
	}
	if len(req.Snapshot.Series) == 0 {
		http.Error(w, "snapshot requires at least one month of financials", http.StatusBadRequest)
		return
	}

	repo := store.NewSnapshotRepo()
	if err := repo.Save(r.Context(), req.CompanyID, &req.Snapshot); err != nil {
		logrus.WithError(err).WithField("company_id", req.CompanyID).Error("snapshot save failed")
		http.Error(w, "snapshot storage unavailable", http.StatusServiceUnavailable)
		return
	}

	resp := UpsertResponse{
		CompanyID: req.CompanyID,
		Months:    len(req.Snapshot.Series),
		Accounts:  len(req.Snapshot.Accounts),
		Meta: apiutil.NewMeta("high", start, apiutil.Provenance{
			BaselineSource: "connector_upload",
			Sources:        []string{"Upload"},
			Confidence:     "high",
		}),
	}

	logrus.WithFields(logrus.Fields{
		"company_id":  req.CompanyID,
		"months":      resp.Months,
		"run_id":      resp.Meta.RunID,
		"duration_ms": resp.Meta.LatencyMS,
	}).Info("company snapshot stored")

	apiutil.WriteJSON(w, http.StatusOK, resp)
}
