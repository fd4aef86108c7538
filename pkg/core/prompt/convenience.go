package prompt

// Convenience functions for common prompt operations

// GetAdvisoryPrompt returns an advisory agent's system prompt by name.
func GetAdvisoryPrompt(name string) (string, error) {
	id := "advisory." + name
	return Get().GetSystemPrompt(id)
}

// PromptIDs contains all known prompt identifiers
var PromptIDs = struct {
	ScenarioNarrative string
	HealthSummary     string
	InsightsNarrative string
	CoachAnswer       string
}{
	ScenarioNarrative: "advisory.scenario_narrative",
	HealthSummary:     "advisory.health_summary",
	InsightsNarrative: "advisory.insights_narrative",
	CoachAnswer:       "advisory.coach_answer",
}
