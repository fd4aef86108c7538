// Package benchmark exposes the peer-benchmark ingestion endpoint.
// Operators paste a published industry-statistics table here; the
// parsed stats land in the peer_benchmarks table and replace the
// built-in defaults for that NAICS code.
package benchmark

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lightsignal/pkg/api/apiutil"
	coreBenchmark "lightsignal/pkg/core/benchmark"
	"lightsignal/pkg/core/store"
)

// Handler holds the cache to invalidate after an upsert.
type Handler struct {
	Cache *coreBenchmark.Cache
}

func NewHandler(cache *coreBenchmark.Cache) *Handler {
	return &Handler{Cache: cache}
}

// IngestRequest carries one NAICS code and the raw HTML of a
// statistics table (metric, median, p75 columns).
type IngestRequest struct {
	NAICS string `json:"naics"`
	HTML  string `json:"html"`
}

// IngestResponse echoes what was parsed and stored.
type IngestResponse struct {
	NAICS string              `json:"naics"`
	Rows  int                 `json:"rows"`
	Stats coreBenchmark.Stats `json:"stats"`
	Meta  apiutil.Meta        `json:"_meta"`
}

// HandleIngest is POST /api/admin/benchmarks/ingest.
func (h *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "POST") {
		return
	}
	start := time.Now()

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.NAICS == "" {
		http.Error(w, "naics is required", http.StatusBadRequest)
		return
	}

	rows, err := coreBenchmark.IngestHTML(strings.NewReader(req.HTML))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	stats, err := coreBenchmark.StatsFromRows(rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	pool := store.GetPool()
	if pool == nil {
		http.Error(w, "benchmark storage unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := coreBenchmark.NewPGSource(pool).Save(r.Context(), req.NAICS, stats); err != nil {
		logrus.WithError(err).WithField("naics", req.NAICS).Error("benchmark save failed")
		http.Error(w, "benchmark storage unavailable", http.StatusServiceUnavailable)
		return
	}
	if h.Cache != nil {
		h.Cache.Refresh(time.Now())
	}

	resp := IngestResponse{
		NAICS: req.NAICS,
		Rows:  len(rows),
		Stats: stats,
		Meta: apiutil.NewMeta("high", start, apiutil.Provenance{
			BaselineSource: "industry_statistics_upload",
			Sources:        []string{"Upload"},
			Confidence:     "high",
		}),
	}

	logrus.WithFields(logrus.Fields{
		"naics":       req.NAICS,
		"rows":        resp.Rows,
		"run_id":      resp.Meta.RunID,
		"duration_ms": resp.Meta.LatencyMS,
	}).Info("peer benchmarks ingested")

	apiutil.WriteJSON(w, http.StatusOK, resp)
}
