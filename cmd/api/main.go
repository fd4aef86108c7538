package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	apiBenchmark "lightsignal/pkg/api/benchmark"
	apiCompany "lightsignal/pkg/api/company"
	apiConfig "lightsignal/pkg/api/config"
	apiDebt "lightsignal/pkg/api/debt"
	apiInsights "lightsignal/pkg/api/insights"
	apiScenario "lightsignal/pkg/api/scenario"
	"lightsignal/pkg/core/agent"
	"lightsignal/pkg/core/benchmark"
	"lightsignal/pkg/core/insights"
	"lightsignal/pkg/core/prompt"
	"lightsignal/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Built-in advisory prompts first, optional overrides from disk.
	if err := prompt.RegisterDefaults(); err != nil {
		logrus.WithError(err).Fatal("failed to register default prompts")
	}
	if _, err := os.Stat("resources"); err == nil {
		if err := prompt.LoadFromDirectory("resources"); err != nil {
			logrus.WithError(err).Warn("failed to load prompt overrides")
		}
	}

	// Initialize manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	// Postgres is optional; the demo company works without it.
	if err := store.InitDB(context.Background()); err != nil {
		logrus.WithError(err).Warn("running without persistence")
	}

	// Peer benchmarks: built-in table, postgres overrides when present,
	// shared redis cache when configured.
	peerCache := NewPeerSource()
	var peers benchmark.Source = peerCache

	narrator := insights.NewNarrator(agentMgr)

	// Config endpoints
	configHandler := apiConfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Scenario lab endpoints
	scenarioHandler := apiScenario.NewHandler(peers, narrator)
	http.HandleFunc("/api/ai/scenario/lab", scenarioHandler.HandleLab)
	http.HandleFunc("/api/ai/scenario/compare", scenarioHandler.HandleCompare)

	// Debt endpoints
	http.HandleFunc("/api/ai/debt/full", apiDebt.HandleFull)
	http.HandleFunc("/api/ai/debt/simulate", apiDebt.HandleSimulate)

	// Insight endpoints
	insightsHandler := apiInsights.NewHandler(peers, narrator)
	http.HandleFunc("/api/ai/insights", insightsHandler.HandlePulse)
	http.HandleFunc("/api/ai/health", insightsHandler.HandleHealth)
	http.HandleFunc("/api/ai/health/coach", insightsHandler.HandleCoach)

	// Ingestion endpoints
	http.HandleFunc("/api/company/snapshot", apiCompany.HandleUpsert)
	benchmarkHandler := apiBenchmark.NewHandler(peerCache)
	http.HandleFunc("/api/admin/benchmarks/ingest", benchmarkHandler.HandleIngest)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logrus.WithField("addr", addr).Info("api server starting")
	if err := http.ListenAndServe(addr, nil); err != nil {
		logrus.WithError(err).Fatal("server failed to start")
	}
}
