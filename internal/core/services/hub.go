package services

import (
	"sync"

	"github.com/agentos/backend/internal/core/ports"
)

const subscriberBuffer = 8

// SubscriberHub fans task status snapshots out to per-task observers.
// Delivery is best-effort: a subscriber whose buffer is full misses the
// update rather than blocking the orchestrator.
type SubscriberHub struct {
	mu   sync.RWMutex
	subs map[string]map[chan ports.TaskStatusSnapshot]struct{}
}

func NewSubscriberHub() *SubscriberHub {
	return &SubscriberHub{
		subs: make(map[string]map[chan ports.TaskStatusSnapshot]struct{}),
	}
}

func (h *SubscriberHub) Subscribe(taskID string) chan ports.TaskStatusSnapshot {
	ch := make(chan ports.TaskStatusSnapshot, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[taskID] == nil {
		h.subs[taskID] = make(map[chan ports.TaskStatusSnapshot]struct{})
	}
	h.subs[taskID][ch] = struct{}{}
	return ch
}

func (h *SubscriberHub) Unsubscribe(taskID string, ch chan ports.TaskStatusSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	observers, ok := h.subs[taskID]
	if !ok {
		return
	}
	if _, ok := observers[ch]; !ok {
		return
	}
	delete(observers, ch)
	if len(observers) == 0 {
		delete(h.subs, taskID)
	}
	close(ch)
}

func (h *SubscriberHub) Notify(taskID string, snapshot ports.TaskStatusSnapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[taskID] {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
