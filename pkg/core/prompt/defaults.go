package prompt

// Built-in advisory prompts. Registered at startup so the service
// works without an external prompt directory; LoadFromDirectory can
// still override any of them by ID.

var defaultPrompts = []*PromptTemplate{
	{
		ID:             PromptIDs.ScenarioNarrative,
		Name:           "Scenario Narrative",
		Category:       "advisory",
		Description:    "Narrates a computed what-if projection for a business owner",
		SystemPrompt:   "You are a financial advisor for small businesses. You are given the computed results of a what-if scenario: baseline KPIs, scenario KPIs, deltas, and stress test outcomes. Write a short plain-language narrative (3-5 sentences) for the business owner. Only reference numbers present in the input. Do not invent figures.",
		UserPromptTmpl: "Scenario: {{.ScenarioName}}\n\nComputed results (JSON):\n{{.ResultsJSON}}\n\nWrite the narrative.",
		Variables:      []PromptVariable{
			{Name: "ScenarioName", Type: "string", Description: "Name of the scenario", Required: true},
			{Name: "ResultsJSON", Type: "object", Description: "Computed projection, KPIs and stress tests", Required: true},
		},
		Version: "1.0",
	},
	{
		ID:             PromptIDs.HealthSummary,
		Name:           "Health Summary",
		Category:       "advisory",
		Description:    "Summarizes the periodic health report",
		SystemPrompt:   "You are a financial advisor. You are given a computed business health report: overall score, category scores, alerts, and recommendations. Summarize the state of the business in 2-4 sentences, leading with the overall score. Only reference numbers present in the input.",
		UserPromptTmpl: "Health report (JSON):\n{{.ReportJSON}}\n\nWrite the summary.",
		Variables:      []PromptVariable{
			{Name: "ReportJSON", Type: "object", Description: "Computed health report", Required: true},
		},
		Version: "1.0",
	},
	{
		ID:             PromptIDs.InsightsNarrative,
		Name:           "Insights Narrative",
		Category:       "advisory",
		Description:    "Narrates the business pulse block",
		SystemPrompt:   "You are a financial advisor. You are given the computed business pulse: efficiency score, growth index, KPI block, and department heatmap. Explain what stands out in 2-4 sentences. Only reference numbers present in the input.",
		UserPromptTmpl: "Pulse (JSON):\n{{.PulseJSON}}\n\nWrite the narrative.",
		Variables:      []PromptVariable{
			{Name: "PulseJSON", Type: "object", Description: "Computed pulse block", Required: true},
		},
		Version: "1.0",
	},
	{
		ID:             PromptIDs.CoachAnswer,
		Name:           "Coach Answer",
		Category:       "advisory",
		Description:    "Answers an owner's question about their health report",
		SystemPrompt:   "You are a financial coach for small business owners. You are given a computed business health report and the owner's question. Answer in 2-4 plain sentences, referencing only numbers present in the report. Respond with a single JSON object and nothing else: {\"answer\": string, \"suggested_levers\": [{\"category\": string, \"key\": string, \"value\": number}]}. suggested_levers may be empty.",
		UserPromptTmpl: "Question: {{.Question}}\n\nHealth report (JSON):\n{{.ReportJSON}}\n\nAnswer as JSON.",
		Variables:      []PromptVariable{
			{Name: "Question", Type: "string", Description: "The owner's question", Required: true},
			{Name: "ReportJSON", Type: "object", Description: "Computed health report", Required: true},
		},
		Version: "1.0",
	},
}

// RegisterDefaults installs the built-in advisory prompts.
func RegisterDefaults() error {
	r := Get()
	for _, pt := range defaultPrompts {
		if err := r.Register(pt); err != nil {
			return err
		}
	}
	return nil
}
