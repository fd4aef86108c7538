// Package config exposes runtime model-provider configuration.
package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"lightsignal/pkg/api/apiutil"
	"lightsignal/pkg/core/agent"
)

type Response struct {
	ActiveProvider string   `json:"active_provider"`
	Available      []string `json:"available"`
}

type SwitchRequest struct {
	Provider string `json:"provider"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	AgentMgr *agent.Manager
}

// NewHandler creates a new config handler
func NewHandler(agentMgr *agent.Manager) *Handler {
	return &Handler{
		AgentMgr: agentMgr,
	}
}

// HandleConfig is GET /api/config.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "GET") {
		return
	}

	available := h.AgentMgr.ListProviders()
	sort.Strings(available)

	resp := Response{
		ActiveProvider: h.AgentMgr.GetActiveProvider(),
		Available:      available,
	}
	json.NewEncoder(w).Encode(resp)
}

// HandleSwitch is POST /api/config/switch.
func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	if apiutil.CORS(w, r, "POST") {
		return
	}

	var req SwitchRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err = h.AgentMgr.SetGlobalProvider(req.Provider)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Fprintf(w, "Success: Switched to %s", req.Provider)
}
