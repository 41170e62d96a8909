package services

import (
	"strings"

	"github.com/agentos/backend/internal/core/ports"
)

// capabilityRule maps keyword triggers to one capability. Rules are checked
// in order so selection is deterministic.
type capabilityRule struct {
	keywords   []string
	capability string
}

var selectionRules = []capabilityRule{
	{keywords: []string{"research"}, capability: ports.CapabilityResearch},
	{keywords: []string{"analyze", "data"}, capability: ports.CapabilityAnalysis},
	{keywords: []string{"write", "create"}, capability: ports.CapabilityWriting},
}

// SelectAgents picks an ordered agent list for the input text. Keyword
// matches are deduplicated per capability, the candidate list is truncated to
// the complexity's agent count, and capabilities missing from the pool are
// dropped. An empty result means no eligible agents; the caller treats that
// as a failure, not a success with no output.
func SelectAgents(text string, complexity Complexity, available map[string]ports.Agent) []ports.Agent {
	lowered := strings.ToLower(text)

	var capabilities []string
	seen := make(map[string]bool)
	for _, rule := range selectionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) && !seen[rule.capability] {
				seen[rule.capability] = true
				capabilities = append(capabilities, rule.capability)
				break
			}
		}
	}

	if len(capabilities) == 0 {
		capabilities = append(capabilities, ports.CapabilityGeneral)
	}

	if len(capabilities) > complexity.AgentsNeeded {
		capabilities = capabilities[:complexity.AgentsNeeded]
	}

	agents := make([]ports.Agent, 0, len(capabilities))
	for _, capability := range capabilities {
		if agent, ok := available[capability]; ok {
			agents = append(agents, agent)
		}
	}
	return agents
}
