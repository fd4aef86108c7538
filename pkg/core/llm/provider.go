package llm

import (
	"context"
	"errors"
)

// ErrNoNarrative signals that no model is available to generate text.
// Callers fall back to their rule-based output.
var ErrNoNarrative = errors.New("no narrative provider configured")

// Provider is the interface every text-generation backend implements.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

// StubProvider returns a fixed response. Used in tests and as the
// degraded mode when no API key is configured, so advisory endpoints
// stay functional without a model behind them.
type StubProvider struct {
	Response string
}

func (p *StubProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if p.Response != "" {
		return p.Response, nil
	}
	return "", ErrNoNarrative
}

func (p *StubProvider) AdaptInstructions(raw string) string {
	return raw
}
