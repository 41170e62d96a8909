package services

import (
	"context"
	"testing"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgent struct {
	name string
}

func (a *stubAgent) Name() string { return a.name }

func (a *stubAgent) Invoke(ctx context.Context, text string, metadata domain.JSONB) (*domain.ResultPayload, error) {
	return &domain.ResultPayload{Summary: a.name}, nil
}

func fullPool() map[string]ports.Agent {
	return map[string]ports.Agent{
		ports.CapabilityResearch: &stubAgent{name: "research-agent"},
		ports.CapabilityAnalysis: &stubAgent{name: "analysis-agent"},
		ports.CapabilityWriting:  &stubAgent{name: "writing-agent"},
		ports.CapabilityGeneral:  &stubAgent{name: "general-agent"},
	}
}

func names(agents []ports.Agent) []string {
	out := make([]string, 0, len(agents))
	for _, a := range agents {
		out = append(out, a.Name())
	}
	return out
}

func TestSelectAgentsByKeyword(t *testing.T) {
	complexity := Complexity{Level: domain.ComplexityComplex, AgentsNeeded: 3}

	selected := SelectAgents("please research the market", complexity, fullPool())
	assert.Equal(t, []string{"research-agent"}, names(selected))

	selected = SelectAgents("analyze this report", complexity, fullPool())
	assert.Equal(t, []string{"analysis-agent"}, names(selected))

	selected = SelectAgents("write a summary", complexity, fullPool())
	assert.Equal(t, []string{"writing-agent"}, names(selected))
}

func TestSelectAgentsMatchingIsCaseInsensitive(t *testing.T) {
	complexity := Complexity{AgentsNeeded: 3}
	selected := SelectAgents("RESEARCH the topic", complexity, fullPool())
	assert.Equal(t, []string{"research-agent"}, names(selected))
}

func TestSelectAgentsDeduplicatesCapabilities(t *testing.T) {
	// "analyze" and "data" both trigger the analysis capability once
	complexity := Complexity{AgentsNeeded: 3}
	selected := SelectAgents("analyze the data set", complexity, fullPool())
	assert.Equal(t, []string{"analysis-agent"}, names(selected))
}

func TestSelectAgentsFallsBackToGeneral(t *testing.T) {
	complexity := Complexity{AgentsNeeded: 1}
	selected := SelectAgents("hello there", complexity, fullPool())
	assert.Equal(t, []string{"general-agent"}, names(selected))
}

func TestSelectAgentsTruncatesToComplexity(t *testing.T) {
	text := "research and analyze the data then write it up"

	selected := SelectAgents(text, Complexity{AgentsNeeded: 3}, fullPool())
	require.Equal(t, []string{"research-agent", "analysis-agent", "writing-agent"}, names(selected))

	selected = SelectAgents(text, Complexity{AgentsNeeded: 2}, fullPool())
	assert.Equal(t, []string{"research-agent", "analysis-agent"}, names(selected))

	selected = SelectAgents(text, Complexity{AgentsNeeded: 1}, fullPool())
	assert.Equal(t, []string{"research-agent"}, names(selected))
}

func TestSelectAgentsDropsMissingCapabilities(t *testing.T) {
	partial := map[string]ports.Agent{
		ports.CapabilityWriting: &stubAgent{name: "writing-agent"},
	}
	selected := SelectAgents("research and write", Complexity{AgentsNeeded: 3}, partial)
	assert.Equal(t, []string{"writing-agent"}, names(selected))
}

func TestSelectAgentsEmptyPool(t *testing.T) {
	selected := SelectAgents("research something", Complexity{AgentsNeeded: 3}, map[string]ports.Agent{})
	assert.Empty(t, selected)
}
