package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"lightsignal/pkg/core/agent"
	"lightsignal/pkg/core/prompt"
	"lightsignal/pkg/core/scenario"
	"lightsignal/pkg/core/stress"
	"lightsignal/pkg/core/utils"
)

// Agent types routed through the model config.
const (
	AgentScenarioNarrator = "scenario_narrator"
	AgentHealthCoach      = "health_coach"
	AgentInsightsWriter   = "insights_writer"
)

// Narrator produces plain-language narratives over computed results.
// It is strictly additive: every figure comes from the computation and
// the model only phrases it. A nil Narrator or a failing provider
// degrades to the rule-based text, never to an error surfaced to the
// caller's response.
type Narrator struct {
	manager *agent.Manager
}

func NewNarrator(m *agent.Manager) *Narrator {
	return &Narrator{manager: m}
}

// ScenarioNarrative narrates a computed projection.
func (n *Narrator) ScenarioNarrative(ctx context.Context, scenarioName string, proj scenario.Projection, stressTests []stress.Result) (string, error) {
	payload := map[string]interface{}{
		"base":         proj.Base,
		"scenario":     proj.Scenario,
		"kpis":         proj.KPIs,
		"stress_tests": stressTests,
	}
	vars := prompt.NewContext().
		Set("ScenarioName", scenarioName)
	return n.generate(ctx, AgentScenarioNarrator, prompt.PromptIDs.ScenarioNarrative, "ResultsJSON", payload, vars)
}

// HealthNarrative summarizes a health report.
func (n *Narrator) HealthNarrative(ctx context.Context, report Report) (string, error) {
	return n.generate(ctx, AgentHealthCoach, prompt.PromptIDs.HealthSummary, "ReportJSON", report, prompt.NewContext())
}

// PulseNarrative narrates the business pulse.
func (n *Narrator) PulseNarrative(ctx context.Context, pulse Pulse) (string, error) {
	return n.generate(ctx, AgentInsightsWriter, prompt.PromptIDs.InsightsNarrative, "PulseJSON", pulse, prompt.NewContext())
}

// CoachAnswer is the structured reply to an owner's question.
type CoachAnswer struct {
	Answer          string  `json:"answer"`
	SuggestedLevers []Lever `json:"suggested_levers,omitempty"`
}

// Coach answers a question about a computed health report. The model
// must return JSON; lenient parsing recovers fenced or slightly
// malformed output before giving up.
func (n *Narrator) Coach(ctx context.Context, question string, report Report) (CoachAnswer, error) {
	if n == nil || n.manager == nil {
		return CoachAnswer{}, fmt.Errorf("no narrator configured")
	}

	pt, err := prompt.Get().GetPrompt(prompt.PromptIDs.CoachAnswer)
	if err != nil {
		return CoachAnswer{}, err
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return CoachAnswer{}, fmt.Errorf("failed to marshal health report: %w", err)
	}
	vars := prompt.NewContext().
		Set("Question", question).
		Set("ReportJSON", string(raw))

	userPrompt, err := prompt.RenderUserPrompt(pt, vars)
	if err != nil {
		return CoachAnswer{}, err
	}

	resp, err := n.manager.ExecutePrompt(ctx, AgentHealthCoach, userPrompt, pt.SystemPrompt, nil)
	if err != nil {
		return CoachAnswer{}, err
	}

	var ans CoachAnswer
	if _, err := utils.SmartParse(resp, &ans); err != nil {
		return CoachAnswer{}, fmt.Errorf("coach reply was not parseable json: %w", err)
	}
	if ans.Answer == "" {
		return CoachAnswer{}, fmt.Errorf("coach reply missing answer field")
	}
	return ans, nil
}

func (n *Narrator) generate(ctx context.Context, agentType, promptID, payloadVar string, payload interface{}, vars *prompt.PromptExecutionContext) (string, error) {
	if n == nil || n.manager == nil {
		return "", fmt.Errorf("no narrator configured")
	}

	pt, err := prompt.Get().GetPrompt(promptID)
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal narrative payload: %w", err)
	}
	vars.Set(payloadVar, string(raw))

	userPrompt, err := prompt.RenderUserPrompt(pt, vars)
	if err != nil {
		return "", err
	}

	resp, err := n.manager.ExecutePrompt(ctx, agentType, userPrompt, pt.SystemPrompt, nil)
	if err != nil {
		return "", err
	}

	cleaned := utils.CleanMarkdown(resp)
	if !utils.ValidateMarkdown(cleaned) {
		return "", fmt.Errorf("narrative failed markdown validation")
	}
	return cleaned, nil
}
