// Package apiutil holds the response plumbing shared by all handlers:
// CORS preamble, json writing, and the _meta provenance block every
// endpoint returns.
package apiutil

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const metaSource = "lightsignal.orchestrator"

// Provenance records where an answer's numbers came from.
type Provenance struct {
	BaselineSource string   `json:"baseline_source"`
	Sources        []string `json:"sources"`
	Notes          []string `json:"notes"`
	Confidence     string   `json:"confidence"`
	UsedPriors     bool     `json:"used_priors"`
	PriorWeight    float64  `json:"prior_weight"`
}

// Meta is the response trailer attached as "_meta".
type Meta struct {
	Source     string     `json:"source"`
	RunID      string     `json:"run_id"`
	Confidence string     `json:"confidence"`
	LatencyMS  int64      `json:"latency_ms"`
	Provenance Provenance `json:"provenance"`
}

// NewMeta stamps a run id and the elapsed time since start.
func NewMeta(confidence string, start time.Time, prov Provenance) Meta {
	return Meta{
		Source:     metaSource,
		RunID:      uuid.NewString(),
		Confidence: confidence,
		LatencyMS:  time.Since(start).Milliseconds(),
		Provenance: prov,
	}
}

// CORS writes the CORS preamble and answers preflight requests.
// Returns true when the request was a handled OPTIONS preflight.
func CORS(w http.ResponseWriter, r *http.Request, methods string) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// WriteJSON encodes v with the right content type.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}
