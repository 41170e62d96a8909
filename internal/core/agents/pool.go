// Package agents holds the capability-addressed agent pool. Agents are
// opaque providers: the orchestrator only knows their capability name and
// the (text, metadata) -> payload contract.
package agents

import (
	"context"
	"sync"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/infrastructure/logger"
)

type Pool struct {
	mu     sync.RWMutex
	agents map[string]ports.Agent
	logger *logger.Logger
}

func NewPool(log *logger.Logger) *Pool {
	return &Pool{
		agents: make(map[string]ports.Agent),
		logger: log,
	}
}

// NewDefaultPool returns a pool with the four builtin capability providers
// registered.
func NewDefaultPool(log *logger.Logger) *Pool {
	pool := NewPool(log)
	pool.Register(ports.CapabilityResearch, newResearchAgent())
	pool.Register(ports.CapabilityAnalysis, newAnalysisAgent())
	pool.Register(ports.CapabilityWriting, newWritingAgent())
	pool.Register(ports.CapabilityGeneral, newGeneralAgent())
	return pool
}

func (p *Pool) Register(capability string, agent ports.Agent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.agents[capability] = agent
	if p.logger != nil {
		p.logger.Infow("agent_registered", "capability", capability, "name", agent.Name())
	}
}

func (p *Pool) Deregister(capability string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.agents, capability)
}

// Available returns a snapshot of the registry keyed by capability.
func (p *Pool) Available(ctx context.Context) map[string]ports.Agent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]ports.Agent, len(p.agents))
	for capability, agent := range p.agents {
		out[capability] = agent
	}
	return out
}

func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.agents)
}
