package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentos/backend/internal/domain"
)

// builtinAgent is a deterministic stand-in provider: it derives a structured
// payload from the input text alone, so tests and local runs behave the same
// every time. Real reasoning backends plug in through the same Agent
// interface.
type builtinAgent struct {
	name       string
	confidence float64
	compose    func(text string) domain.ResultPayload
}

func (a *builtinAgent) Name() string { return a.name }

func (a *builtinAgent) Invoke(ctx context.Context, text string, metadata domain.JSONB) (*domain.ResultPayload, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	payload := a.compose(text)
	payload.Confidence = a.confidence
	return &payload, nil
}

func topic(text string) string {
	const max = 80
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > max {
		trimmed = trimmed[:max]
	}
	return trimmed
}

func newResearchAgent() *builtinAgent {
	return &builtinAgent{
		name:       "research-agent",
		confidence: 0.82,
		compose: func(text string) domain.ResultPayload {
			return domain.ResultPayload{
				Summary: fmt.Sprintf("Research findings for: %s", topic(text)),
				Details: []string{
					"Collected background material on the requested topic",
					"Ranked findings by relevance",
				},
				Sources: []string{"knowledge-base", "web-index"},
			}
		},
	}
}

func newAnalysisAgent() *builtinAgent {
	return &builtinAgent{
		name:       "analysis-agent",
		confidence: 0.78,
		compose: func(text string) domain.ResultPayload {
			words := len(strings.Fields(text))
			return domain.ResultPayload{
				Summary: fmt.Sprintf("Analysis of: %s", topic(text)),
				Details: []string{
					fmt.Sprintf("Input comprises %d words", words),
					"Identified key entities and trends",
				},
				Sources: []string{"analytics-engine"},
			}
		},
	}
}

func newWritingAgent() *builtinAgent {
	return &builtinAgent{
		name:       "writing-agent",
		confidence: 0.75,
		compose: func(text string) domain.ResultPayload {
			return domain.ResultPayload{
				Summary: fmt.Sprintf("Draft based on: %s", topic(text)),
				Details: []string{"Produced a structured draft from the request"},
				Sources: []string{"style-guide"},
			}
		},
	}
}

func newGeneralAgent() *builtinAgent {
	return &builtinAgent{
		name:       "general-agent",
		confidence: 0.70,
		compose: func(text string) domain.ResultPayload {
			return domain.ResultPayload{
				Summary: fmt.Sprintf("Response for: %s", topic(text)),
				Details: []string{"Handled request with the general-purpose pipeline"},
				Sources: []string{"general-knowledge"},
			}
		},
	}
}
